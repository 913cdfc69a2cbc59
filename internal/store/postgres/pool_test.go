package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolConfig_Validate(t *testing.T) {
	t.Run("missing connection string", func(t *testing.T) {
		cfg := &PoolConfig{}
		require.Error(t, cfg.Validate())
	})

	t.Run("connection string present", func(t *testing.T) {
		cfg := &PoolConfig{ConnString: "postgres://localhost/db"}
		require.NoError(t, cfg.Validate())
	})
}

func TestPoolConfig_ApplyDefaults(t *testing.T) {
	t.Run("fills unset fields", func(t *testing.T) {
		cfg := &PoolConfig{ConnString: "postgres://localhost/db"}
		cfg.ApplyDefaults()

		require.Equal(t, int32(20), cfg.MaxConns)
		require.Equal(t, int32(5), cfg.MinConns)
		require.Equal(t, int32(3600), cfg.MaxConnLifetime)
		require.Equal(t, int32(1800), cfg.MaxConnIdleTime)
		require.Equal(t, int32(60), cfg.HealthCheckPeriod)
		require.Equal(t, int32(10), cfg.ConnectTimeout)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		cfg := &PoolConfig{ConnString: "postgres://localhost/db", MaxConns: 3}
		cfg.ApplyDefaults()

		require.Equal(t, int32(3), cfg.MaxConns)
	})
}
