package result

import (
	"database/sql/driver"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/beevik/etree"

	"sigquery/internal/domain"
)

// Wire element and attribute names of a result document.
const (
	RootTag    = "RESULTAT"
	ColumnsTag = "COLONNES"
	ColumnTag  = "COLONNE"
	RowsTag    = "TUPLES"
	RowTag     = "TUPLE"
	FieldTag   = "CHAMP"

	typeAttr = "type"
	nullAttr = "null"
)

// Encode serialises rs into a result document.
func Encode(rs domain.Rowset) (*etree.Document, error) {
	doc := etree.NewDocument()
	// Escape carriage returns so parsers do not fold them into newlines.
	doc.WriteSettings.CanonicalText = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootTag)

	cols := root.CreateElement(ColumnsTag)
	for _, c := range rs.Columns {
		if err := checkText(c.Name); err != nil {
			return nil, fmt.Errorf("%w: column %q: %w", domain.ErrEncoding, c.Name, err)
		}
		col := cols.CreateElement(ColumnTag)
		if c.Type != "" {
			col.CreateAttr(typeAttr, c.Type)
		}
		col.SetText(c.Name)
	}

	tuples := root.CreateElement(RowsTag)
	for i, row := range rs.Rows {
		if len(rs.Columns) > 0 && len(row) != len(rs.Columns) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d columns",
				domain.ErrEncoding, i+1, len(row), len(rs.Columns))
		}
		tuple := tuples.CreateElement(RowTag)
		for j, raw := range row {
			v, err := Stringify(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %w", domain.ErrEncoding, i+1, j+1, err)
			}
			field := tuple.CreateElement(FieldTag)
			if v.Null {
				field.CreateAttr(nullAttr, "true")
				continue
			}
			field.SetText(v.Text)
		}
	}
	return doc, nil
}

// Stringify converts a raw driver value to its document form.
func Stringify(raw any) (domain.Value, error) {
	var s string
	switch v := raw.(type) {
	case nil:
		return domain.Value{Null: true}, nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		s = v.Format(time.RFC3339Nano)
	case driver.Valuer:
		dv, err := v.Value()
		if err != nil {
			return domain.Value{}, err
		}
		if _, ok := dv.(driver.Valuer); ok {
			s = fmt.Sprint(dv)
			break
		}
		return Stringify(dv)
	case fmt.Stringer:
		s = v.String()
	default:
		s = fmt.Sprint(v)
	}
	if err := checkText(s); err != nil {
		return domain.Value{}, err
	}
	return domain.Value{Text: s}, nil
}

// checkText rejects text that cannot appear in an XML 1.0 document.
func checkText(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("invalid UTF-8")
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("character %U not allowed in XML", r)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x9, r == 0xA, r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
