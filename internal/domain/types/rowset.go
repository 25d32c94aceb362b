package types

// Column describes one rowset column as reported by the driver.
type Column struct {
	Name string
	Type string
}

// Rowset is an ordered collection of rows in retrieval order; each row holds
// raw driver values in column metadata order.
type Rowset struct {
	Columns []Column
	Rows    [][]any
}
