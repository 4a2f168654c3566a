package material

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"lexvault/internal/domain"
	"lexvault/internal/logging"
	"lexvault/internal/protocol/hybrid"
	"lexvault/internal/services/identity"
)

// DefaultTimeout bounds a single operation when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// KeySource hands out the session keys, waiting for generation if needed.
type KeySource interface {
	Initialize(ctx context.Context) (*identity.Keys, error)
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds every operation. Zero or negative disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithLogger sets the service logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithViewObserver receives every state transition of every view.
func WithViewObserver(fn func(domain.MaterialID, hybrid.State)) Option {
	return func(s *Service) { s.observe = fn }
}

// Service stores materials as signed, encrypted bundles.
type Service struct {
	store   domain.MaterialStore
	keys    KeySource
	log     *logging.Logger
	timeout time.Duration
	now     func() time.Time
	observe func(domain.MaterialID, hybrid.State)
}

// New returns a material service persisting to store and sealing with the
// keys from keys.
func New(store domain.MaterialStore, keys KeySource, opts ...Option) *Service {
	s := &Service{
		store:   store,
		keys:    keys,
		log:     logging.Discard(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Upload seals req.Content and stores the new material. Nothing is stored
// unless sealing succeeds.
func (s *Service) Upload(ctx context.Context, req domain.UploadRequest) (domain.Material, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Material{}, fmt.Errorf("%w: name is required", domain.ErrInvalidMaterial)
	}
	if !req.Kind.Valid() {
		return domain.Material{}, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidMaterial, req.Kind)
	}
	if len(req.Content) == 0 {
		return domain.Material{}, fmt.Errorf("%w: content is empty", domain.ErrInvalidMaterial)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bundle, err := s.seal(ctx, req.Content)
	if err != nil {
		return domain.Material{}, err
	}

	now := s.now().UTC()
	m := domain.Material{
		ID:          domain.MaterialID(uuid.NewString()),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Kind:        req.Kind,
		Size:        int64(len(req.Content)),
		UploadedAt:  now,
		UpdatedAt:   now,
		Bundle:      bundle,
	}
	if err := s.store.SaveMaterial(ctx, m); err != nil {
		return domain.Material{}, timeoutAs(fmt.Errorf("save material: %w", err), domain.ErrEncryptionFailed)
	}
	s.log.Infof("uploaded material %s (%s, %d bytes)", m.ID, m.Kind, m.Size)
	return m, nil
}

// View verifies and decrypts the material's bundle.
func (s *Service) View(ctx context.Context, id domain.MaterialID) (domain.ViewedMaterial, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	m, err := s.load(ctx, id)
	if err != nil {
		return domain.ViewedMaterial{}, timeoutAs(err, domain.ErrDecryptionFailed)
	}
	keys, err := s.keys.Initialize(ctx)
	if err != nil {
		return domain.ViewedMaterial{}, err
	}

	var opts []hybrid.Option
	if s.observe != nil {
		opts = append(opts, hybrid.WithObserver(func(st hybrid.State) { s.observe(id, st) }))
	}
	plaintext, err := hybrid.NewOpener(keys.Recipient(), opts...).
		VerifyAndDecrypt(ctx, m.Bundle, keys.OwnerPublic())
	if err != nil {
		err = timeoutAs(err, domain.ErrDecryptionFailed)
		s.log.Warnf("view material %s failed: %s", id, domain.KindOf(err))
		s.log.Debugf("view material %s: %v", id, err)
		return domain.ViewedMaterial{}, err
	}
	s.log.Infof("viewed material %s", id)
	return domain.ViewedMaterial{
		Material:  m,
		Plaintext: plaintext,
		MIMEType:  MIMEType(m.Kind, plaintext),
	}, nil
}

// Replace seals new content for an existing material. The old bundle is
// discarded, never modified.
func (s *Service) Replace(ctx context.Context, id domain.MaterialID, content []byte) (domain.Material, error) {
	if len(content) == 0 {
		return domain.Material{}, fmt.Errorf("%w: content is empty", domain.ErrInvalidMaterial)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	m, err := s.load(ctx, id)
	if err != nil {
		return domain.Material{}, timeoutAs(err, domain.ErrEncryptionFailed)
	}
	bundle, err := s.seal(ctx, content)
	if err != nil {
		return domain.Material{}, err
	}
	m.Bundle = bundle
	m.Size = int64(len(content))
	m.UpdatedAt = s.now().UTC()
	if err := s.store.SaveMaterial(ctx, m); err != nil {
		return domain.Material{}, timeoutAs(fmt.Errorf("save material: %w", err), domain.ErrEncryptionFailed)
	}
	s.log.Infof("replaced content of material %s (%d bytes)", id, m.Size)
	return m, nil
}

// UpdateDetails edits the name and description. The bundle is untouched.
func (s *Service) UpdateDetails(
	ctx context.Context,
	id domain.MaterialID,
	update domain.DetailsUpdate,
) (domain.Material, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	m, err := s.load(ctx, id)
	if err != nil {
		return domain.Material{}, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.Material{}, fmt.Errorf("%w: name is required", domain.ErrInvalidMaterial)
		}
		m.Name = name
	}
	if update.Description != nil {
		m.Description = strings.TrimSpace(*update.Description)
	}
	m.UpdatedAt = s.now().UTC()
	if err := s.store.SaveMaterial(ctx, m); err != nil {
		return domain.Material{}, fmt.Errorf("save material: %w", err)
	}
	s.log.Infof("updated details of material %s", id)
	return m, nil
}

// Get returns the stored record without opening it.
func (s *Service) Get(ctx context.Context, id domain.MaterialID) (domain.Material, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.load(ctx, id)
}

// List returns every material, newest upload first.
func (s *Service) List(ctx context.Context) ([]domain.Material, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	materials, err := s.store.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	sort.SliceStable(materials, func(i, j int) bool {
		a, b := materials[i], materials[j]
		if !a.UploadedAt.Equal(b.UploadedAt) {
			return a.UploadedAt.After(b.UploadedAt)
		}
		return a.ID < b.ID
	})
	return materials, nil
}

// Delete removes the material and its bundle.
func (s *Service) Delete(ctx context.Context, id domain.MaterialID) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.store.DeleteMaterial(ctx, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrMaterialNotFound, id)
	}
	s.log.Infof("deleted material %s", id)
	return nil
}

func (s *Service) load(ctx context.Context, id domain.MaterialID) (domain.Material, error) {
	m, ok, err := s.store.LoadMaterial(ctx, id)
	if err != nil {
		return domain.Material{}, fmt.Errorf("load material: %w", err)
	}
	if !ok {
		return domain.Material{}, fmt.Errorf("%w: %s", domain.ErrMaterialNotFound, id)
	}
	return m, nil
}

func (s *Service) seal(ctx context.Context, content []byte) (domain.EncryptedBundle, error) {
	keys, err := s.keys.Initialize(ctx)
	if err != nil {
		return domain.EncryptedBundle{}, err
	}
	bundle, err := hybrid.NewSealer(keys.Owner()).EncryptAndSign(ctx, content, keys.RecipientPublic())
	if err != nil {
		err = timeoutAs(err, domain.ErrEncryptionFailed)
		s.log.Warnf("seal failed: %s", domain.KindOf(err))
		return domain.EncryptedBundle{}, err
	}
	return bundle, nil
}

// timeoutAs reports an expired or cancelled context as failure.
func timeoutAs(err, failure error) error {
	if domain.IsTimeout(err) {
		return fmt.Errorf("%w: %v", failure, err)
	}
	return err
}

// Compile-time assertion that Service implements domain.MaterialService.
var _ domain.MaterialService = (*Service)(nil)
