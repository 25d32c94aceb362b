package party

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/beevik/etree"

	"sigquery/internal/crypto"
	"sigquery/internal/domain"
	"sigquery/internal/logger"
	"sigquery/internal/metrics"
	"sigquery/internal/protocol/barrier"
	"sigquery/internal/protocol/dsig"
	"sigquery/internal/protocol/query"
	"sigquery/internal/protocol/result"
)

// Config describes one party. Store is required for the responder only.
type Config struct {
	Role     domain.Role
	Name     domain.DocumentName
	Identity *crypto.Identity
	Peer     *x509.Certificate
	Barrier  *barrier.Barrier
	Exchange domain.ExchangeStore
	Store    domain.Store
	Logger   *slog.Logger
}

// Party is one actor of the exchange. Its identity and peer certificate are
// fixed at construction.
type Party struct {
	role     domain.Role
	name     domain.DocumentName
	id       *crypto.Identity
	peer     *x509.Certificate
	barrier  *barrier.Barrier
	exchange domain.ExchangeStore
	store    domain.Store
	log      *slog.Logger
}

// New validates cfg and returns a party ready to Run.
func New(cfg Config) (*Party, error) {
	switch {
	case cfg.Role != domain.Requester && cfg.Role != domain.Responder:
		return nil, fmt.Errorf("unknown role %s", cfg.Role)
	case cfg.Identity == nil || cfg.Identity.Private == nil:
		return nil, fmt.Errorf("%w: %s has no identity", domain.ErrKeyGeneration, cfg.Role)
	case cfg.Peer == nil:
		return nil, fmt.Errorf("%s has no peer certificate", cfg.Role)
	case cfg.Barrier == nil:
		return nil, errors.New("no barrier")
	case cfg.Exchange == nil:
		return nil, errors.New("no exchange store")
	case cfg.Name == "":
		return nil, errors.New("no document name")
	case cfg.Role == domain.Responder && cfg.Store == nil:
		return nil, errors.New("responder needs a store")
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}
	log = log.With("role", cfg.Role.String(), "doc", cfg.Name.String())
	return &Party{
		role:     cfg.Role,
		name:     cfg.Name,
		id:       cfg.Identity,
		peer:     cfg.Peer,
		barrier:  cfg.Barrier,
		exchange: cfg.Exchange,
		store:    cfg.Store,
		log:      log,
	}, nil
}

// Role returns the script this party runs.
func (p *Party) Role() domain.Role { return p.role }

// Certificate returns the certificate this party presents to its peer.
func (p *Party) Certificate() *x509.Certificate { return p.id.Public() }

// Run executes the role script to a terminal outcome. It never blocks past
// ctx: every gate wait ends when ctx does.
func (p *Party) Run(ctx context.Context) domain.Outcome {
	out := domain.Outcome{Role: p.role}
	var err error
	if p.role == domain.Requester {
		err = p.request(ctx, &out)
	} else {
		err = p.respond(ctx, &out)
	}
	if err != nil {
		// Release the peer; gates already open stay open.
		p.barrier.Abort(err)
	}
	out.Status = domain.Classify(err)
	out.Err = err
	metrics.OutcomesTotal.WithLabelValues(p.role.String(), out.Status.String()).Inc()

	switch out.Status {
	case domain.StatusCompleted:
		p.log.Info("script completed")
	case domain.StatusRejected:
		p.log.Warn("script rejected", "err", err)
	default:
		p.log.Error("script failed", "err", err)
	}
	return out
}

// request is the requester script.
func (p *Party) request(ctx context.Context, out *domain.Outcome) error {
	if err := p.await(ctx, domain.KeysExchanged); err != nil {
		return err
	}
	raw, err := p.exchange.LoadRequest(p.name)
	if err != nil {
		return fmt.Errorf("load request: %w", err)
	}
	signed, err := p.sign(raw)
	if err != nil {
		return err
	}
	if err := p.exchange.SaveSignedRequest(p.name, signed); err != nil {
		return fmt.Errorf("save signed request: %w", err)
	}
	if err := p.signal(domain.RequestReady); err != nil {
		return err
	}

	if err := p.await(ctx, domain.ResultReady); err != nil {
		return err
	}
	raw, err = p.exchange.LoadSignedResult(p.name)
	if err != nil {
		return fmt.Errorf("load signed result: %w", err)
	}
	el, err := p.verify(raw)
	if err != nil {
		return err
	}
	doc, err := result.Decode(el)
	if err != nil {
		return err
	}
	out.Result = &doc
	p.log.Info("result verified", "rows", len(doc.Rows))
	return nil
}

// respond is the responder script.
func (p *Party) respond(ctx context.Context, out *domain.Outcome) error {
	if err := p.await(ctx, domain.KeysExchanged); err != nil {
		return err
	}
	if err := p.await(ctx, domain.RequestReady); err != nil {
		return err
	}
	raw, err := p.exchange.LoadSignedRequest(p.name)
	if err != nil {
		return fmt.Errorf("load signed request: %w", err)
	}
	el, err := p.verify(raw)
	if err != nil {
		return err
	}
	q, err := query.Parse(el)
	if err != nil {
		return err
	}
	out.Query = q
	p.log.Debug("request translated", "query", q.String())

	start := time.Now()
	rs, err := p.store.Execute(ctx, q)
	metrics.StoreQuerySeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}

	doc, err := result.Encode(rs)
	if err != nil {
		return err
	}
	decoded, err := result.Decode(doc.Root())
	if err != nil {
		return err
	}
	out.Result = &decoded

	unsigned, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEncoding, err)
	}
	if err := p.exchange.SaveResult(p.name, unsigned); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	signed, err := p.sign(unsigned)
	if err != nil {
		return err
	}
	if err := p.exchange.SaveSignedResult(p.name, signed); err != nil {
		return fmt.Errorf("save signed result: %w", err)
	}
	return p.signal(domain.ResultReady)
}

func (p *Party) await(ctx context.Context, g domain.Gate) error {
	start := time.Now()
	err := p.barrier.Await(ctx, g)
	metrics.GateWaitSeconds.WithLabelValues(p.role.String(), g.String()).Observe(time.Since(start).Seconds())
	if err != nil {
		return err
	}
	p.log.Debug("gate open", "gate", g.String())
	return nil
}

func (p *Party) signal(g domain.Gate) error {
	if err := p.barrier.Signal(g); err != nil {
		return fmt.Errorf("signal %s: %w", g, err)
	}
	p.log.Debug("gate signalled", "gate", g.String())
	return nil
}

func (p *Party) sign(raw []byte) ([]byte, error) {
	signed, err := dsig.SignBytes(raw, p.id)
	metrics.SignaturesTotal.WithLabelValues(p.role.String(), metrics.ResultLabel(err)).Inc()
	return signed, err
}

// verify authenticates raw against the peer certificate and returns the
// signed content only.
func (p *Party) verify(raw []byte) (*etree.Element, error) {
	el, err := dsig.Validate(raw, p.peer)
	metrics.VerificationsTotal.WithLabelValues(p.role.String(), metrics.ResultLabel(err)).Inc()
	return el, err
}
