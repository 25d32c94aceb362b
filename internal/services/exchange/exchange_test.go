package exchange_test

import (
	"context"
	"crypto/rsa"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"sigquery/internal/crypto"
	"sigquery/internal/domain"
	"sigquery/internal/logger"
	"sigquery/internal/metrics"
	"sigquery/internal/protocol/dsig"
	"sigquery/internal/protocol/query"
	"sigquery/internal/services/exchange"
	"sigquery/internal/store"
)

const docName domain.DocumentName = "users.xml"

var (
	keysOnce sync.Once
	keys     [2]*rsa.PrivateKey
	keysErr  error
)

// fixedKey returns a provider handing out one of two cached keys.
func fixedKey(t *testing.T, i int) crypto.KeyPairProvider {
	t.Helper()
	keysOnce.Do(func() {
		for j := range keys {
			keys[j], keysErr = crypto.RSAProvider{}.GenerateKeyPair()
			if keysErr != nil {
				return
			}
		}
	})
	require.NoError(t, keysErr)
	return crypto.ProviderFunc(func() (*rsa.PrivateKey, error) { return keys[i], nil })
}

func newConfig(t *testing.T, req domain.RequestDocument) (exchange.RunConfig, *store.ExchangeFileStore) {
	t.Helper()
	dir := t.TempDir()
	ex, err := store.NewExchangeFileStore(filepath.Join(dir, "requests"))
	require.NoError(t, err)
	doc, err := query.Encode(req)
	require.NoError(t, err)
	raw, err := doc.WriteToBytes()
	require.NoError(t, err)
	require.NoError(t, ex.SaveRequest(docName, raw))

	db, err := store.OpenSQLite(filepath.Join(dir, "demo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Seed(context.Background(), store.DemoScript)
	require.NoError(t, err)

	return exchange.RunConfig{
		Name:          docName,
		Exchange:      ex,
		Store:         db,
		RequesterKeys: fixedKey(t, 0),
		ResponderKeys: fixedKey(t, 1),
		Timeout:       30 * time.Second,
		Logger:        logger.Discard(),
	}, ex
}

func TestRun_Completes(t *testing.T) {
	cfg, ex := newConfig(t, domain.RequestDocument{
		Fields:    []string{"item", "total"},
		Tables:    []string{"orders"},
		Condition: "user_id=1",
	})
	before := testutil.ToFloat64(metrics.RunsTotal.WithLabelValues(domain.StatusCompleted.String()))

	rep, err := exchange.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, rep.OK(), "err: %v", rep.Err())
	require.Equal(t, domain.PhaseDone, rep.Phase)
	require.NotEqual(t, rep.RequesterFingerprint, rep.ResponderFingerprint)
	require.Len(t, rep.Requester.Result.Rows, 2)
	require.Equal(t, "keyboard", rep.Requester.Result.Rows[0][0].Text)
	require.Equal(t, "199", rep.Requester.Result.Rows[1][1].Text)

	after := testutil.ToFloat64(metrics.RunsTotal.WithLabelValues(domain.StatusCompleted.String()))
	require.Equal(t, before+1, after)

	// The signed result on disk is bound to the responder's key.
	signed, err := ex.LoadSignedResult(docName)
	require.NoError(t, err)
	respID, err := crypto.IdentityFromKey("responder", keys[1])
	require.NoError(t, err)
	require.True(t, dsig.Verify(signed, respID.Public()))
	reqID, err := crypto.IdentityFromKey("requester", keys[0])
	require.NoError(t, err)
	require.False(t, dsig.Verify(signed, reqID.Public()))
}

func TestRun_KeyGenerationFailure(t *testing.T) {
	cfg, _ := newConfig(t, domain.RequestDocument{Fields: []string{"name"}, Tables: []string{"users"}})
	cfg.ResponderKeys = crypto.ProviderFunc(func() (*rsa.PrivateKey, error) {
		return nil, errors.New("no entropy")
	})

	_, err := exchange.Run(context.Background(), cfg)
	require.ErrorIs(t, err, domain.ErrKeyGeneration)
}

func TestRun_ShortKeyRefused(t *testing.T) {
	cfg, _ := newConfig(t, domain.RequestDocument{Fields: []string{"name"}, Tables: []string{"users"}})
	cfg.RequesterKeys = crypto.RSAProvider{Bits: 1024}

	_, err := exchange.Run(context.Background(), cfg)
	require.ErrorIs(t, err, domain.ErrKeyGeneration)
}

func TestRun_MissingRequestTerminates(t *testing.T) {
	cfg, _ := newConfig(t, domain.RequestDocument{Fields: []string{"name"}, Tables: []string{"users"}})
	cfg.Name = "absent.xml"

	rep, err := exchange.Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, domain.StatusFailed, rep.Requester.Status)
	require.ErrorIs(t, rep.Requester.Err, store.ErrNotFound)
	require.Equal(t, domain.StatusFailed, rep.Responder.Status)
	require.ErrorIs(t, rep.Responder.Err, domain.ErrBarrierWaitAborted)
	require.Equal(t, domain.PhaseDone, rep.Phase)
}
