package domain

import (
	interfaces "sigquery/internal/domain/interfaces"
	types "sigquery/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Role            = types.Role
	Status          = types.Status
	Gate            = types.Gate
	Phase           = types.Phase
	Query           = types.Query
	RequestDocument = types.RequestDocument
	ResultDocument  = types.ResultDocument
	Row             = types.Row
	Value           = types.Value
	Column          = types.Column
	Rowset          = types.Rowset
	Outcome         = types.Outcome
	DocumentName    = types.DocumentName
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	Store         = interfaces.Store
	ExchangeStore = interfaces.ExchangeStore
	IdentityStore = interfaces.IdentityStore
)

// Re-exported constants.
const (
	Requester = types.Requester
	Responder = types.Responder

	StatusCompleted = types.StatusCompleted
	StatusRejected  = types.StatusRejected
	StatusFailed    = types.StatusFailed

	KeysExchanged = types.KeysExchanged
	RequestReady  = types.RequestReady
	ResultReady   = types.ResultReady

	PhaseInit          = types.PhaseInit
	PhaseKeysExchanged = types.PhaseKeysExchanged
	PhaseRequestReady  = types.PhaseRequestReady
	PhaseResultReady   = types.PhaseResultReady
	PhaseDone          = types.PhaseDone

	NumGates = types.NumGates
)
