package types

// Outcome is the terminal report of one party script.
type Outcome struct {
	Role   Role
	Status Status

	// Query is set on the responder once the request was translated.
	Query Query
	// Result is the verified result on the requester, or the produced result
	// on the responder.
	Result *ResultDocument

	Err error
}

// OK reports whether the script completed.
func (o Outcome) OK() bool { return o.Status == StatusCompleted }
