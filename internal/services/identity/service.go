package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lexvault/internal/crypto"
	"lexvault/internal/domain"
	"lexvault/internal/logging"
)

// State reports the progress of key generation.
type State string

// Generation states, as reported by State and the health endpoint.
const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Generator produces the private halves of a session's key pairs.
type Generator func() (domain.LocalOwner, domain.LocalRecipient, error)

// Option configures a KeyStore.
type Option func(*KeyStore)

// WithGenerator replaces the key generator.
func WithGenerator(g Generator) Option {
	return func(s *KeyStore) { s.generate = g }
}

// WithLogger sets the logger used to report generation.
func WithLogger(l *logging.Logger) Option {
	return func(s *KeyStore) { s.log = l }
}

// KeyStore owns the session key pairs.
type KeyStore struct {
	generate Generator
	log      *logging.Logger

	once sync.Once
	done chan struct{}

	// keys and err are written once before done is closed.
	keys *Keys
	err  error
}

// NewKeyStore returns a KeyStore that has not generated anything yet.
func NewKeyStore(opts ...Option) *KeyStore {
	s := &KeyStore{
		generate: GenerateP256,
		log:      logging.Discard(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins key generation if it has not begun. It does not wait.
func (s *KeyStore) Start() {
	s.once.Do(func() {
		s.log.Debugf("key generation started")
		go s.run()
	})
}

func (s *KeyStore) run() {
	defer close(s.done)

	owner, recipient, err := s.generate()
	if err != nil {
		s.err = fmt.Errorf("%w: key generation: %v", domain.ErrCryptoUnavailable, err)
		s.log.Errorf("key generation failed: %v", err)
		return
	}
	keys, err := newKeys(owner, recipient)
	if err != nil {
		s.err = fmt.Errorf("%w: key generation: %v", domain.ErrCryptoUnavailable, err)
		s.log.Errorf("key generation failed: %v", err)
		return
	}
	s.keys = keys
	fp := keys.Fingerprints()
	s.log.Infof("keys ready: signing %s, exchange %s", fp.Signing, fp.Exchange)
}

// Initialize starts generation if needed and waits for it.
func (s *KeyStore) Initialize(ctx context.Context) (*Keys, error) {
	s.Start()
	if k, err := s.Keys(); !errors.Is(err, domain.ErrInitializationPending) {
		return k, err
	}
	select {
	case <-s.done:
		return s.keys, s.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrInitializationPending, ctx.Err())
	}
}

// Keys returns the generated keys without waiting.
func (s *KeyStore) Keys() (*Keys, error) {
	select {
	case <-s.done:
		return s.keys, s.err
	default:
		return nil, domain.ErrInitializationPending
	}
}

// State reports whether generation is pending, ready or failed.
func (s *KeyStore) State() State {
	select {
	case <-s.done:
		if s.err != nil {
			return StateFailed
		}
		return StateReady
	default:
		return StatePending
	}
}

// GenerateP256 creates a fresh ECDSA P-256 signing key and ECDH P-256
// exchange key.
func GenerateP256() (domain.LocalOwner, domain.LocalRecipient, error) {
	signing, _, err := crypto.GenerateP256Signing()
	if err != nil {
		return domain.LocalOwner{}, domain.LocalRecipient{}, fmt.Errorf("signing key: %w", err)
	}
	exchange, _, err := crypto.GenerateP256Exchange()
	if err != nil {
		return domain.LocalOwner{}, domain.LocalRecipient{}, fmt.Errorf("exchange key: %w", err)
	}
	return domain.LocalOwner{SigningKey: signing}, domain.LocalRecipient{ExchangeKey: exchange}, nil
}
