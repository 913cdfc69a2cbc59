package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/store"
)

func TestOrganizationStore(t *testing.T) {
	ctx := context.Background()

	org := &models.Organization{
		OrgID:     uuid.Must(uuid.NewV7()),
		Name:      "Acme Staffing",
		Slug:      "acme",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	t.Run("create and get", func(t *testing.T) {
		os := NewOrganizationStore()
		require.NoError(t, os.Create(ctx, org))

		got, err := os.Get(ctx, org.OrgID)
		require.NoError(t, err)
		require.Equal(t, "Acme Staffing", got.Name)
	})

	t.Run("get by slug", func(t *testing.T) {
		os := NewOrganizationStore()
		require.NoError(t, os.Create(ctx, org))

		got, err := os.GetBySlug(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, org.OrgID, got.OrgID)
	})

	t.Run("duplicate slug rejected", func(t *testing.T) {
		os := NewOrganizationStore()
		require.NoError(t, os.Create(ctx, org))

		dup := *org
		dup.OrgID = uuid.Must(uuid.NewV7())
		require.ErrorIs(t, os.Create(ctx, &dup), store.ErrOrganizationAlreadyExists)
	})

	t.Run("not found", func(t *testing.T) {
		os := NewOrganizationStore()

		_, err := os.Get(ctx, uuid.Must(uuid.NewV7()))
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)

		_, err = os.GetBySlug(ctx, "nowhere")
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})
}

func TestPrincipalStore(t *testing.T) {
	ctx := context.Background()

	principal := &models.Principal{
		PrincipalID: uuid.Must(uuid.NewV7()),
		Name:        "Jane Doe",
		Email:       "jane@acme.example",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	t.Run("create and get", func(t *testing.T) {
		ps := NewPrincipalStore()
		require.NoError(t, ps.Create(ctx, principal))

		got, err := ps.Get(ctx, principal.PrincipalID)
		require.NoError(t, err)
		require.Equal(t, "jane@acme.example", got.Email)
	})

	t.Run("get by email", func(t *testing.T) {
		ps := NewPrincipalStore()
		require.NoError(t, ps.Create(ctx, principal))

		got, err := ps.GetByEmail(ctx, "jane@acme.example")
		require.NoError(t, err)
		require.Equal(t, principal.PrincipalID, got.PrincipalID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		ps := NewPrincipalStore()
		require.NoError(t, ps.Create(ctx, principal))

		dup := *principal
		dup.PrincipalID = uuid.Must(uuid.NewV7())
		require.ErrorIs(t, ps.Create(ctx, &dup), store.ErrPrincipalAlreadyExists)
	})

	t.Run("not found", func(t *testing.T) {
		ps := NewPrincipalStore()

		_, err := ps.Get(ctx, uuid.Must(uuid.NewV7()))
		require.ErrorIs(t, err, store.ErrPrincipalNotFound)

		_, err = ps.GetByEmail(ctx, "ghost@acme.example")
		require.ErrorIs(t, err, store.ErrPrincipalNotFound)
	})
}
