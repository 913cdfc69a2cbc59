// Package seed loads demo/development fixtures from a YAML file and
// applies them to the stores: organizations, principals, memberships and
// optional starting goal sets. Production tenants are provisioned out of
// band; seeding exists so a fresh environment has something to show.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stafflens/goalboard/internal/models"
	"github.com/stafflens/goalboard/internal/store"
	"gopkg.in/yaml.v3"
)

// File is the top-level shape of a seed file.
type File struct {
	Organizations []Organization `yaml:"organizations"`
	Principals    []Principal    `yaml:"principals"`
	Memberships   []Membership   `yaml:"memberships"`
}

// Organization seeds one tenant, optionally with a starting goal set.
type Organization struct {
	Name  string             `yaml:"name"`
	Slug  string             `yaml:"slug"`
	Goals map[string]float64 `yaml:"goals"`
}

// Principal seeds one identity, keyed by email within the file.
type Principal struct {
	ID    string `yaml:"id"` // optional fixed UUID, generated when empty
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Membership joins a seeded principal (by email) to a seeded organization
// (by slug) with a role.
type Membership struct {
	Org       string `yaml:"org"`
	Principal string `yaml:"principal"`
	Role      string `yaml:"role"`
}

// Stores collects the store interfaces seeding writes to.
type Stores struct {
	Organizations store.OrganizationStore
	Principals    store.PrincipalStore
	Memberships   store.MembershipStore
	Goals         store.GoalsStore
}

// Load reads and parses a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 - operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return &f, nil
}

// Validate checks referential integrity of the seed file before any write.
func (f *File) Validate() error {
	slugs := make(map[string]bool, len(f.Organizations))
	for _, org := range f.Organizations {
		if org.Slug == "" || org.Name == "" {
			return fmt.Errorf("organization requires name and slug")
		}
		if slugs[org.Slug] {
			return fmt.Errorf("duplicate organization slug %q", org.Slug)
		}
		slugs[org.Slug] = true
	}

	emails := make(map[string]bool, len(f.Principals))
	for _, p := range f.Principals {
		if p.Email == "" {
			return fmt.Errorf("principal requires email")
		}
		if emails[p.Email] {
			return fmt.Errorf("duplicate principal email %q", p.Email)
		}
		emails[p.Email] = true
	}

	for _, m := range f.Memberships {
		if !slugs[m.Org] {
			return fmt.Errorf("membership references unknown org %q", m.Org)
		}
		if !emails[m.Principal] {
			return fmt.Errorf("membership references unknown principal %q", m.Principal)
		}
		if !models.Role(m.Role).Valid() {
			return fmt.Errorf("membership has invalid role %q", m.Role)
		}
	}

	return nil
}

// Apply writes the seed data to the stores. Records that already exist are
// skipped, so applying the same file twice is harmless.
func (f *File) Apply(ctx context.Context, stores Stores) error {
	if err := f.Validate(); err != nil {
		return err
	}

	now := time.Now()

	orgIDs := make(map[string]uuid.UUID, len(f.Organizations))
	for _, o := range f.Organizations {
		org := &models.Organization{
			OrgID:     uuid.Must(uuid.NewV7()),
			Name:      o.Name,
			Slug:      o.Slug,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err := stores.Organizations.Create(ctx, org)
		switch {
		case errors.Is(err, store.ErrOrganizationAlreadyExists):
			existing, err := stores.Organizations.GetBySlug(ctx, o.Slug)
			if err != nil {
				return fmt.Errorf("failed to load existing org %q: %w", o.Slug, err)
			}
			org = existing
			log.Debug().Str("slug", o.Slug).Msg("Organization already seeded, skipping")
		case err != nil:
			return fmt.Errorf("failed to seed organization %q: %w", o.Slug, err)
		}

		orgIDs[o.Slug] = org.OrgID

		if len(o.Goals) > 0 {
			if _, err := stores.Goals.Upsert(ctx, org.OrgID, models.GoalSet(o.Goals)); err != nil {
				return fmt.Errorf("failed to seed goals for %q: %w", o.Slug, err)
			}
		}
	}

	principalIDs := make(map[string]uuid.UUID, len(f.Principals))
	for _, p := range f.Principals {
		// Resolve by email first so re-applying a file without fixed IDs
		// does not mint duplicate principals.
		if existing, err := stores.Principals.GetByEmail(ctx, p.Email); err == nil {
			principalIDs[p.Email] = existing.PrincipalID
			log.Debug().Str("email", p.Email).Msg("Principal already seeded, skipping")
			continue
		} else if !errors.Is(err, store.ErrPrincipalNotFound) {
			return fmt.Errorf("failed to look up principal %q: %w", p.Email, err)
		}

		id := uuid.Must(uuid.NewV7())
		if p.ID != "" {
			parsed, err := uuid.Parse(p.ID)
			if err != nil {
				return fmt.Errorf("invalid principal id %q: %w", p.ID, err)
			}
			id = parsed
		}

		principal := &models.Principal{
			PrincipalID: id,
			Name:        p.Name,
			Email:       p.Email,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := stores.Principals.Create(ctx, principal); err != nil {
			return fmt.Errorf("failed to seed principal %q: %w", p.Email, err)
		}

		principalIDs[p.Email] = id
	}

	for _, m := range f.Memberships {
		membership := &models.Membership{
			OrgID:       orgIDs[m.Org],
			PrincipalID: principalIDs[m.Principal],
			Role:        models.Role(m.Role),
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		err := stores.Memberships.Create(ctx, membership)
		if err != nil && !errors.Is(err, store.ErrMembershipAlreadyExists) {
			return fmt.Errorf("failed to seed membership %s->%s: %w", m.Principal, m.Org, err)
		}
	}

	log.Info().
		Int("organizations", len(f.Organizations)).
		Int("principals", len(f.Principals)).
		Int("memberships", len(f.Memberships)).
		Msg("Seed applied")

	return nil
}
