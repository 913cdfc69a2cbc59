package commands

import (
	"context"
	"fmt"

	"github.com/stafflens/goalboard/internal/logger"
	"github.com/stafflens/goalboard/internal/seed"
	postgresstore "github.com/stafflens/goalboard/internal/store/postgres"
)

type SeedCmd struct {
	File       string `help:"seed file to apply" arg:"" type:"existingfile"`
	ConnString string `help:"PostgreSQL connection string" required:"" env:"POSTGRES_CONNECTION_STRING"`
	Migrate    bool   `help:"run migrations before seeding" default:"true"`
}

func (c *SeedCmd) Run(globals *Globals) error {
	logger.Setup(globals.Debug)
	ctx := context.Background()

	seedFile, err := seed.Load(c.File)
	if err != nil {
		return err
	}

	pool, err := postgresstore.NewPool(ctx, &postgresstore.PoolConfig{ConnString: c.ConnString})
	if err != nil {
		return err
	}
	defer pool.Close()

	if c.Migrate {
		if err := postgresstore.RunMigrations(ctx, pool); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return seedFile.Apply(ctx, seed.Stores{
		Organizations: postgresstore.NewOrganizationStore(pool),
		Principals:    postgresstore.NewPrincipalStore(pool),
		Memberships:   postgresstore.NewMembershipStore(pool),
		Goals:         postgresstore.NewGoalsStore(pool),
	})
}
