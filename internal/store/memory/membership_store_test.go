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

func TestMembershipStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("create new membership", func(t *testing.T) {
		ms := NewMembershipStore()

		err := ms.Create(ctx, &models.Membership{
			OrgID:       uuid.Must(uuid.NewV7()),
			PrincipalID: uuid.Must(uuid.NewV7()),
			Role:        models.RoleOwner,
			CreatedAt:   time.Now(),
		})
		require.NoError(t, err)
	})

	t.Run("duplicate pair returns error", func(t *testing.T) {
		ms := NewMembershipStore()
		m := &models.Membership{
			OrgID:       uuid.Must(uuid.NewV7()),
			PrincipalID: uuid.Must(uuid.NewV7()),
			Role:        models.RoleMember,
			CreatedAt:   time.Now(),
		}

		require.NoError(t, ms.Create(ctx, m))
		err := ms.Create(ctx, m)
		require.ErrorIs(t, err, store.ErrMembershipAlreadyExists)
	})

	t.Run("same principal in two orgs is fine", func(t *testing.T) {
		ms := NewMembershipStore()
		principalID := uuid.Must(uuid.NewV7())

		for range 2 {
			require.NoError(t, ms.Create(ctx, &models.Membership{
				OrgID:       uuid.Must(uuid.NewV7()),
				PrincipalID: principalID,
				Role:        models.RoleViewer,
				CreatedAt:   time.Now(),
			}))
		}
	})
}

func TestMembershipStore_Get(t *testing.T) {
	ctx := context.Background()
	ms := NewMembershipStore()

	orgID := uuid.Must(uuid.NewV7())
	principalID := uuid.Must(uuid.NewV7())

	require.NoError(t, ms.Create(ctx, &models.Membership{
		OrgID:       orgID,
		PrincipalID: principalID,
		Role:        models.RoleAdmin,
		CreatedAt:   time.Now(),
	}))

	t.Run("existing pair", func(t *testing.T) {
		m, err := ms.Get(ctx, principalID, orgID)
		require.NoError(t, err)
		require.Equal(t, models.RoleAdmin, m.Role)
	})

	t.Run("missing pair", func(t *testing.T) {
		_, err := ms.Get(ctx, principalID, uuid.Must(uuid.NewV7()))
		require.ErrorIs(t, err, store.ErrMembershipNotFound)
	})
}

func TestMembershipStore_ListByPrincipal(t *testing.T) {
	ctx := context.Background()
	ms := NewMembershipStore()

	principalID := uuid.Must(uuid.NewV7())
	base := time.Now()

	newest := uuid.Must(uuid.NewV7())
	oldest := uuid.Must(uuid.NewV7())
	middle := uuid.Must(uuid.NewV7())

	for _, m := range []*models.Membership{
		{OrgID: newest, PrincipalID: principalID, Role: models.RoleOwner, CreatedAt: base.Add(2 * time.Hour)},
		{OrgID: oldest, PrincipalID: principalID, Role: models.RoleViewer, CreatedAt: base},
		{OrgID: middle, PrincipalID: principalID, Role: models.RoleMember, CreatedAt: base.Add(time.Hour)},
	} {
		require.NoError(t, ms.Create(ctx, m))
	}

	// Another principal's membership must not appear.
	require.NoError(t, ms.Create(ctx, &models.Membership{
		OrgID:       uuid.Must(uuid.NewV7()),
		PrincipalID: uuid.Must(uuid.NewV7()),
		Role:        models.RoleOwner,
		CreatedAt:   base,
	}))

	list, err := ms.ListByPrincipal(ctx, principalID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, oldest, list[0].OrgID)
	require.Equal(t, middle, list[1].OrgID)
	require.Equal(t, newest, list[2].OrgID)
}

func TestMembershipStore_ListByOrganization(t *testing.T) {
	ctx := context.Background()
	ms := NewMembershipStore()

	orgID := uuid.Must(uuid.NewV7())
	base := time.Now()

	for i := range 3 {
		require.NoError(t, ms.Create(ctx, &models.Membership{
			OrgID:       orgID,
			PrincipalID: uuid.Must(uuid.NewV7()),
			Role:        models.RoleMember,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := ms.ListByOrganization(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.True(t, list[0].CreatedAt.Before(list[1].CreatedAt))
	require.True(t, list[1].CreatedAt.Before(list[2].CreatedAt))
}
