package types

// Query is a flat SQL statement translated from a request document.
type Query string

// String returns the statement text.
func (q Query) String() string { return string(q) }

// RequestDocument is the declarative query a requester submits.
type RequestDocument struct {
	Fields    []string
	Tables    []string
	Condition string // empty when absent
}

// HasCondition reports whether the request carries a WHERE predicate.
func (r RequestDocument) HasCondition() bool { return r.Condition != "" }

// Value is one stringified column value. Null marks an SQL NULL explicitly.
type Value struct {
	Text string
	Null bool
}

// String returns the text, or NULL for a null value.
func (v Value) String() string {
	if v.Null {
		return "NULL"
	}
	return v.Text
}

// Row is an ordered list of column values.
type Row []Value

// ResultDocument is the declarative form of a rowset returned to the requester.
type ResultDocument struct {
	Columns []string
	Rows    []Row
}
