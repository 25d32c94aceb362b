package result

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"sigquery/internal/domain"
)

// Decode reads a result document rooted at el.
func Decode(el *etree.Element) (domain.ResultDocument, error) {
	if el == nil || el.Tag != RootTag {
		return domain.ResultDocument{}, fmt.Errorf("%w: missing %s root", domain.ErrEncoding, RootTag)
	}

	var out domain.ResultDocument
	if cols := el.SelectElement(ColumnsTag); cols != nil {
		for _, c := range cols.SelectElements(ColumnTag) {
			out.Columns = append(out.Columns, c.Text())
		}
	}
	tuples := el.SelectElement(RowsTag)
	if tuples == nil {
		return out, nil
	}
	for _, tuple := range tuples.SelectElements(RowTag) {
		fields := tuple.SelectElements(FieldTag)
		row := make(domain.Row, 0, len(fields))
		for _, f := range fields {
			if f.SelectAttrValue(nullAttr, "") == "true" {
				row = append(row, domain.Value{Null: true})
				continue
			}
			row = append(row, domain.Value{Text: f.Text()})
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// Format renders doc as one "Tuple N: v1 v2" line per row.
func Format(doc domain.ResultDocument) string {
	var b strings.Builder
	for i, row := range doc.Rows {
		fmt.Fprintf(&b, "Tuple %d:", i+1)
		for _, v := range row {
			b.WriteByte(' ')
			b.WriteString(v.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
