package interfaces

import (
	"context"

	domaintypes "sigquery/internal/domain/types"
)

// Store executes translated queries against the relational database.
// Connection lifecycle belongs to the implementation.
type Store interface {
	Execute(ctx context.Context, query domaintypes.Query) (domaintypes.Rowset, error)
}

// ExchangeStore persists the documents handed between the two parties.
// Each artifact has a single writer; paths are handed off only after the
// write completes.
type ExchangeStore interface {
	LoadRequest(name domaintypes.DocumentName) ([]byte, error)
	SaveRequest(name domaintypes.DocumentName, raw []byte) error

	SaveSignedRequest(name domaintypes.DocumentName, raw []byte) error
	LoadSignedRequest(name domaintypes.DocumentName) ([]byte, error)

	SaveResult(name domaintypes.DocumentName, raw []byte) error
	LoadResult(name domaintypes.DocumentName) ([]byte, error)

	SaveSignedResult(name domaintypes.DocumentName, raw []byte) error
	LoadSignedResult(name domaintypes.DocumentName) ([]byte, error)
}

// IdentityStore persists sealed party key material.
type IdentityStore interface {
	SaveKey(name, passphrase string, der []byte) error
	LoadKey(name, passphrase string) (der []byte, ok bool, err error)
}
