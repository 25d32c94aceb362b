package query

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"sigquery/internal/domain"
)

// Wire element names of a request document.
const (
	RootTag      = "REQUETE"
	FieldTag     = "CHAMP"
	TableTag     = "TABLE"
	ConditionTag = "CONDITION"
)

// Decode reads the fields, tables and condition found below el, in document
// order. The signature subtree is never searched.
func Decode(el *etree.Element) (domain.RequestDocument, error) {
	if el == nil {
		return domain.RequestDocument{}, fmt.Errorf("%w: empty document", domain.ErrMalformedRequest)
	}
	var req domain.RequestDocument
	conditionSeen := false
	walk(el, func(e *etree.Element) {
		switch e.Tag {
		case FieldTag:
			req.Fields = append(req.Fields, strings.TrimSpace(e.Text()))
		case TableTag:
			req.Tables = append(req.Tables, strings.TrimSpace(e.Text()))
		case ConditionTag:
			// Only the first condition counts.
			if !conditionSeen {
				conditionSeen = true
				req.Condition = strings.TrimSpace(e.Text())
			}
		}
	})
	return req, validate(req)
}

// Build renders req as a SELECT statement.
func Build(req domain.RequestDocument) (domain.Query, error) {
	if err := validate(req); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(req.Fields, ", "))
	b.WriteString(" FROM ")
	b.WriteString(strings.Join(req.Tables, ", "))
	if req.HasCondition() {
		b.WriteString(" WHERE ")
		b.WriteString(req.Condition)
	}
	return domain.Query(b.String()), nil
}

// Parse decodes el and builds its query.
func Parse(el *etree.Element) (domain.Query, error) {
	req, err := Decode(el)
	if err != nil {
		return "", err
	}
	return Build(req)
}

// Encode returns an unsigned request document for req.
func Encode(req domain.RequestDocument) (*etree.Document, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalText = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootTag)
	for _, f := range req.Fields {
		root.CreateElement(FieldTag).SetText(f)
	}
	for _, t := range req.Tables {
		root.CreateElement(TableTag).SetText(t)
	}
	if req.HasCondition() {
		root.CreateElement(ConditionTag).SetText(req.Condition)
	}
	doc.Indent(2)
	return doc, nil
}

func validate(req domain.RequestDocument) error {
	if len(req.Fields) == 0 {
		return fmt.Errorf("%w: no %s element", domain.ErrMalformedRequest, FieldTag)
	}
	if len(req.Tables) == 0 {
		return fmt.Errorf("%w: no %s element", domain.ErrMalformedRequest, TableTag)
	}
	for _, f := range req.Fields {
		if f == "" {
			return fmt.Errorf("%w: empty %s element", domain.ErrMalformedRequest, FieldTag)
		}
	}
	for _, t := range req.Tables {
		if t == "" {
			return fmt.Errorf("%w: empty %s element", domain.ErrMalformedRequest, TableTag)
		}
	}
	return nil
}

// walk visits the descendants of el in document order, skipping signatures.
func walk(el *etree.Element, visit func(*etree.Element)) {
	for _, child := range el.ChildElements() {
		if child.Tag == "Signature" {
			continue
		}
		visit(child)
		walk(child, visit)
	}
}
