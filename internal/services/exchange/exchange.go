package exchange

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"sigquery/internal/crypto"
	"sigquery/internal/domain"
	"sigquery/internal/logger"
	"sigquery/internal/metrics"
	"sigquery/internal/protocol/barrier"
	"sigquery/internal/services/identity"
	"sigquery/internal/services/party"
)

// DefaultTimeout bounds a run when RunConfig.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// RunConfig wires one run.
type RunConfig struct {
	Name     domain.DocumentName
	Exchange domain.ExchangeStore
	Store    domain.Store

	// RequesterKeys and ResponderKeys supply the parties' RSA keys.
	RequesterKeys crypto.KeyPairProvider
	ResponderKeys crypto.KeyPairProvider

	Timeout time.Duration
	Logger  *slog.Logger
}

// Report is the terminal state of a run.
type Report struct {
	RunID     uuid.UUID
	Requester domain.Outcome
	Responder domain.Outcome
	Phase     domain.Phase

	RequesterCertificate *x509.Certificate
	ResponderCertificate *x509.Certificate
	RequesterFingerprint string
	ResponderFingerprint string
}

// OK reports whether both scripts completed.
func (r Report) OK() bool { return r.Requester.OK() && r.Responder.OK() }

// Err returns the first script error, requester first.
func (r Report) Err() error {
	if r.Requester.Err != nil {
		return r.Requester.Err
	}
	return r.Responder.Err
}

// Run executes one exchange. The returned error covers setup only; script
// failures are reported in the outcomes.
func Run(ctx context.Context, cfg RunConfig) (Report, error) {
	rep := Report{RunID: uuid.New(), Phase: domain.PhaseInit}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}
	log = log.With("run_id", rep.RunID.String())

	b, requester, responder, err := setup(cfg, log)
	if err != nil {
		metrics.RunsTotal.WithLabelValues(domain.StatusFailed.String()).Inc()
		return rep, err
	}
	rep.RequesterCertificate = requester.Certificate()
	rep.ResponderCertificate = responder.Certificate()
	rep.RequesterFingerprint = crypto.CertificateFingerprint(rep.RequesterCertificate)
	rep.ResponderFingerprint = crypto.CertificateFingerprint(rep.ResponderCertificate)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Info("run started", "doc", cfg.Name.String(),
		"requester", rep.RequesterFingerprint, "responder", rep.ResponderFingerprint)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rep.Requester = requester.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		rep.Responder = responder.Run(ctx)
	}()

	// Both certificates are in place; release the scripts.
	if err := b.Signal(domain.KeysExchanged); err != nil {
		b.Abort(err)
	}
	wg.Wait()

	rep.Phase = domain.PhaseDone
	metrics.RunsTotal.WithLabelValues(rep.Requester.Status.String()).Inc()
	log.Info("run finished",
		"requester", rep.Requester.Status.String(),
		"responder", rep.Responder.Status.String())
	return rep, nil
}

// setup issues both identities and builds the parties around one barrier,
// each holding the other's certificate.
func setup(cfg RunConfig, log *slog.Logger) (*barrier.Barrier, *party.Party, *party.Party, error) {
	if cfg.RequesterKeys == nil || cfg.ResponderKeys == nil {
		return nil, nil, nil, fmt.Errorf("%w: missing key pair provider", domain.ErrKeyGeneration)
	}
	if cfg.Exchange == nil || cfg.Store == nil {
		return nil, nil, nil, errors.New("exchange and store are required")
	}

	reqID, err := identity.New(cfg.RequesterKeys, nil).Create(domain.Requester.String())
	if err != nil {
		return nil, nil, nil, err
	}
	respID, err := identity.New(cfg.ResponderKeys, nil).Create(domain.Responder.String())
	if err != nil {
		return nil, nil, nil, err
	}

	b := barrier.New()
	base := party.Config{
		Name:     cfg.Name,
		Barrier:  b,
		Exchange: cfg.Exchange,
		Logger:   log,
	}

	reqCfg := base
	reqCfg.Role, reqCfg.Identity, reqCfg.Peer = domain.Requester, reqID, respID.Public()
	requester, err := party.New(reqCfg)
	if err != nil {
		return nil, nil, nil, err
	}

	respCfg := base
	respCfg.Role, respCfg.Identity, respCfg.Peer = domain.Responder, respID, reqID.Public()
	respCfg.Store = cfg.Store
	responder, err := party.New(respCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return b, requester, responder, nil
}
