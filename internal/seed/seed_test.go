package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/store/memory"
)

const seedYAML = `
organizations:
  - name: Acme Staffing
    slug: acme
    goals:
      revenueYTD: 1200000
      unitsYTD: 1500
  - name: Globex
    slug: globex

principals:
  - name: Jane Doe
    email: jane@acme.example
  - id: 0192aef1-0000-7000-8000-000000000001
    name: John Smith
    email: john@acme.example

memberships:
  - org: acme
    principal: jane@acme.example
    role: owner
  - org: acme
    principal: john@acme.example
    role: viewer
  - org: globex
    principal: jane@acme.example
    role: admin
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newStores() Stores {
	return Stores{
		Organizations: memory.NewOrganizationStore(),
		Principals:    memory.NewPrincipalStore(),
		Memberships:   memory.NewMembershipStore(),
		Goals:         memory.NewGoalsStore(),
	}
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		f, err := Load(writeSeedFile(t, seedYAML))
		require.NoError(t, err)
		require.Len(t, f.Organizations, 2)
		require.Len(t, f.Principals, 2)
		require.Len(t, f.Memberships, 3)
		require.Equal(t, 1200000.0, f.Organizations[0].Goals["revenueYTD"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/seed.yaml")
		require.Error(t, err)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		_, err := Load(writeSeedFile(t, "organizations: [unclosed"))
		require.Error(t, err)
	})
}

func TestFile_Validate(t *testing.T) {
	valid := func() *File {
		f, err := Load(writeSeedFile(t, seedYAML))
		require.NoError(t, err)
		return f
	}

	t.Run("valid file passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("duplicate slug", func(t *testing.T) {
		f := valid()
		f.Organizations[1].Slug = "acme"
		require.ErrorContains(t, f.Validate(), "duplicate organization slug")
	})

	t.Run("org without name", func(t *testing.T) {
		f := valid()
		f.Organizations[0].Name = ""
		require.Error(t, f.Validate())
	})

	t.Run("duplicate principal email", func(t *testing.T) {
		f := valid()
		f.Principals[1].Email = "jane@acme.example"
		require.ErrorContains(t, f.Validate(), "duplicate principal email")
	})

	t.Run("membership references unknown org", func(t *testing.T) {
		f := valid()
		f.Memberships[0].Org = "nowhere"
		require.ErrorContains(t, f.Validate(), "unknown org")
	})

	t.Run("membership references unknown principal", func(t *testing.T) {
		f := valid()
		f.Memberships[0].Principal = "ghost@acme.example"
		require.ErrorContains(t, f.Validate(), "unknown principal")
	})

	t.Run("invalid role", func(t *testing.T) {
		f := valid()
		f.Memberships[0].Role = "superuser"
		require.ErrorContains(t, f.Validate(), "invalid role")
	})
}

func TestFile_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds all records", func(t *testing.T) {
		f, err := Load(writeSeedFile(t, seedYAML))
		require.NoError(t, err)

		stores := newStores()
		require.NoError(t, f.Apply(ctx, stores))

		acme, err := stores.Organizations.GetBySlug(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, "Acme Staffing", acme.Name)

		goals, err := stores.Goals.Get(ctx, acme.OrgID)
		require.NoError(t, err)
		require.Equal(t, models.GoalSet{"revenueYTD": 1200000, "unitsYTD": 1500}, goals)

		members, err := stores.Memberships.ListByOrganization(ctx, acme.OrgID)
		require.NoError(t, err)
		require.Len(t, members, 2)

		globex, err := stores.Organizations.GetBySlug(ctx, "globex")
		require.NoError(t, err)

		// Globex seeds no goals, so the store yields an empty set.
		empty, err := stores.Goals.Get(ctx, globex.OrgID)
		require.NoError(t, err)
		require.Empty(t, empty)
	})

	t.Run("fixed principal ID is honored", func(t *testing.T) {
		f, err := Load(writeSeedFile(t, seedYAML))
		require.NoError(t, err)

		stores := newStores()
		require.NoError(t, f.Apply(ctx, stores))

		acme, err := stores.Organizations.GetBySlug(ctx, "acme")
		require.NoError(t, err)

		members, err := stores.Memberships.ListByOrganization(ctx, acme.OrgID)
		require.NoError(t, err)

		found := false
		for _, m := range members {
			if m.PrincipalID.String() == "0192aef1-0000-7000-8000-000000000001" {
				require.Equal(t, models.RoleViewer, m.Role)
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run("applying twice is idempotent", func(t *testing.T) {
		f, err := Load(writeSeedFile(t, seedYAML))
		require.NoError(t, err)

		stores := newStores()
		require.NoError(t, f.Apply(ctx, stores))
		require.NoError(t, f.Apply(ctx, stores))

		acme, err := stores.Organizations.GetBySlug(ctx, "acme")
		require.NoError(t, err)

		members, err := stores.Memberships.ListByOrganization(ctx, acme.OrgID)
		require.NoError(t, err)
		require.Len(t, members, 2)
	})

	t.Run("invalid file is rejected before any write", func(t *testing.T) {
		f, err := Load(writeSeedFile(t, seedYAML))
		require.NoError(t, err)
		f.Memberships[0].Role = "superuser"

		stores := newStores()
		require.Error(t, f.Apply(ctx, stores))

		_, err = stores.Organizations.GetBySlug(ctx, "acme")
		require.Error(t, err)
	})
}
