package material_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexvault/internal/domain"
	"lexvault/internal/protocol/hybrid"
	"lexvault/internal/services/identity"
	"lexvault/internal/services/material"
	"lexvault/internal/store"
)

// staticKeys returns fixed keys without consulting the context.
type staticKeys struct {
	keys *identity.Keys
	err  error
}

func (s staticKeys) Initialize(context.Context) (*identity.Keys, error) { return s.keys, s.err }

func newKeys(t *testing.T) *identity.Keys {
	t.Helper()
	k, err := identity.NewKeyStore().Initialize(context.Background())
	require.NoError(t, err)
	return k
}

func newService(t *testing.T, opts ...material.Option) (*material.Service, *store.MaterialFileStore, *identity.Keys) {
	t.Helper()
	st := store.NewMaterialFileStore(t.TempDir())
	keys := newKeys(t)
	return material.New(st, staticKeys{keys: keys}, opts...), st, keys
}

func upload(t *testing.T, svc *material.Service, content string) domain.Material {
	t.Helper()
	m, err := svc.Upload(context.Background(), domain.UploadRequest{
		Name:        "Deposition transcript",
		Description: "Day one",
		Kind:        domain.KindText,
		Content:     []byte(content),
	})
	require.NoError(t, err)
	return m
}

func TestUploadThenView(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()

	m := upload(t, svc, "Hello, World!")
	assert.NotEmpty(t, m.ID)
	assert.EqualValues(t, 13, m.Size)
	assert.True(t, m.Bundle.Complete())

	stored, ok, err := st.LoadMaterial(ctx, m.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, string(stored.Bundle.Ciphertext), "Hello")

	v, err := svc.View(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(v.Plaintext))
	assert.Equal(t, "text/plain", v.MIMEType)
	assert.Equal(t, m.ID, v.Material.ID)
}

func TestUploadValidation(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()

	for name, req := range map[string]domain.UploadRequest{
		"no name":    {Kind: domain.KindPDF, Content: []byte("x")},
		"bad kind":   {Name: "a", Kind: "zip", Content: []byte("x")},
		"no content": {Name: "a", Kind: domain.KindPDF},
	} {
		_, err := svc.Upload(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidMaterial, name)
	}
	list, err := st.ListMaterials(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestViewTamperedBundle(t *testing.T) {
	svc, st, _ := newService(t)
	ctx := context.Background()
	m := upload(t, svc, "privileged")

	m.Bundle.IV[0] ^= 0x01
	require.NoError(t, st.SaveMaterial(ctx, m))

	_, err := svc.View(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
	assert.Equal(t, domain.KindSignatureInvalid, domain.KindOf(err))
}

func TestViewWrongRecipient(t *testing.T) {
	st := store.NewMaterialFileStore(t.TempDir())
	keys := newKeys(t)
	other := newKeys(t)
	ctx := context.Background()

	m, err := material.New(st, staticKeys{keys: keys}).Upload(ctx, domain.UploadRequest{
		Name: "Memo", Kind: domain.KindPDF, Content: []byte("%PDF"),
	})
	require.NoError(t, err)

	mixed, err := identity.NewKeys(keys.Owner(), other.Recipient())
	require.NoError(t, err)
	_, err = material.New(st, staticKeys{keys: mixed}).View(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrDecryptionFailed)
	assert.NotErrorIs(t, err, domain.ErrSignatureInvalid)

	_, err = material.New(st, staticKeys{keys: other}).View(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrSignatureInvalid)
}

func TestKeysUnavailable(t *testing.T) {
	st := store.NewMaterialFileStore(t.TempDir())
	ctx := context.Background()

	pending := material.New(st, staticKeys{err: domain.ErrInitializationPending})
	_, err := pending.Upload(ctx, domain.UploadRequest{Name: "a", Kind: domain.KindPDF, Content: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrInitializationPending)

	failed := material.New(st, staticKeys{err: fmt.Errorf("%w: boom", domain.ErrCryptoUnavailable)})
	_, err = failed.Upload(ctx, domain.UploadRequest{Name: "a", Kind: domain.KindPDF, Content: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrCryptoUnavailable)

	list, err := st.ListMaterials(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "nothing may be stored when sealing fails")
}

func TestTimeouts(t *testing.T) {
	st := store.NewMaterialFileStore(t.TempDir())
	keys := newKeys(t)
	ctx := context.Background()

	m, err := material.New(st, staticKeys{keys: keys}).Upload(ctx, domain.UploadRequest{
		Name: "Exhibit", Kind: domain.KindText, Content: []byte("x"),
	})
	require.NoError(t, err)

	slow := material.New(st, staticKeys{keys: keys}, material.WithTimeout(time.Nanosecond))
	time.Sleep(time.Millisecond)

	_, err = slow.Upload(ctx, domain.UploadRequest{Name: "a", Kind: domain.KindText, Content: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrEncryptionFailed)

	_, err = slow.View(ctx, m.ID)
	assert.ErrorIs(t, err, domain.ErrDecryptionFailed)

	_, err = slow.Replace(ctx, m.ID, []byte("y"))
	assert.ErrorIs(t, err, domain.ErrEncryptionFailed)
	assert.Equal(t, domain.KindEncryptionFailed, domain.KindOf(err))
}

func TestReplaceCreatesNewBundle(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newService(t, material.WithClock(func() time.Time { return now }))
	ctx := context.Background()
	m := upload(t, svc, "draft")

	now = now.Add(time.Hour)
	replaced, err := svc.Replace(ctx, m.ID, []byte("final version"))
	require.NoError(t, err)
	assert.NotEqual(t, m.Bundle.EphemeralPublicKey, replaced.Bundle.EphemeralPublicKey)
	assert.NotEqual(t, m.Bundle.IV, replaced.Bundle.IV)
	assert.EqualValues(t, len("final version"), replaced.Size)
	assert.True(t, replaced.UpdatedAt.After(replaced.UploadedAt))

	v, err := svc.View(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "final version", string(v.Plaintext))

	_, err = svc.Replace(ctx, "missing", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestUpdateDetailsKeepsBundle(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()
	m := upload(t, svc, "content")

	name, desc := "Renamed", "  new description "
	updated, err := svc.UpdateDetails(ctx, m.ID, domain.DetailsUpdate{Name: &name, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "new description", updated.Description)
	assert.Equal(t, m.Bundle, updated.Bundle)

	empty := " "
	_, err = svc.UpdateDetails(ctx, m.ID, domain.DetailsUpdate{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidMaterial)

	v, err := svc.View(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "content", string(v.Plaintext))
}

func TestListNewestFirstAndDelete(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newService(t, material.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	first := upload(t, svc, "one")
	now = now.Add(time.Minute)
	second := upload(t, svc, "two")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), domain.ErrMaterialNotFound)

	_, err = svc.Get(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
	_, err = svc.View(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)

	got, err := svc.Get(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Name, got.Name)
}

func TestViewObserver(t *testing.T) {
	var states []hybrid.State
	svc, _, _ := newService(t, material.WithViewObserver(func(_ domain.MaterialID, s hybrid.State) {
		states = append(states, s)
	}))
	m := upload(t, svc, "x")

	_, err := svc.View(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, []hybrid.State{
		hybrid.StateIdle, hybrid.StateVerifying, hybrid.StateVerifiedOK,
		hybrid.StateDecrypting, hybrid.StateDone,
	}, states)
}

func TestStoreErrorsPropagate(t *testing.T) {
	keys := newKeys(t)
	svc := material.New(brokenStore{}, staticKeys{keys: keys})
	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, errDisk)
	_, err = svc.Upload(context.Background(), domain.UploadRequest{Name: "a", Kind: domain.KindPDF, Content: []byte("x")})
	assert.ErrorIs(t, err, errDisk)
}

var errDisk = errors.New("disk full")

type brokenStore struct{}

func (brokenStore) SaveMaterial(context.Context, domain.Material) error { return errDisk }
func (brokenStore) LoadMaterial(context.Context, domain.MaterialID) (domain.Material, bool, error) {
	return domain.Material{}, false, errDisk
}
func (brokenStore) ListMaterials(context.Context) ([]domain.Material, error) { return nil, errDisk }
func (brokenStore) DeleteMaterial(context.Context, domain.MaterialID) (bool, error) {
	return false, errDisk
}
