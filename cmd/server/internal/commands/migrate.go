package commands

import (
	"context"

	"github.com/stafflens/goalboard/internal/logger"
	postgresstore "github.com/stafflens/goalboard/internal/store/postgres"
)

type MigrateCmd struct {
	ConnString string `help:"PostgreSQL connection string" required:"" env:"POSTGRES_CONNECTION_STRING"`
}

func (c *MigrateCmd) Run(globals *Globals) error {
	logger.Setup(globals.Debug)
	ctx := context.Background()

	pool, err := postgresstore.NewPool(ctx, &postgresstore.PoolConfig{ConnString: c.ConnString})
	if err != nil {
		return err
	}
	defer pool.Close()

	return postgresstore.RunMigrations(ctx, pool)
}
