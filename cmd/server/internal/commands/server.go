package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/stafflens/goalboard/internal/api"
	"github.com/stafflens/goalboard/internal/auth"
	httpmiddleware "github.com/stafflens/goalboard/internal/http"
	"github.com/stafflens/goalboard/internal/logger"
	"github.com/stafflens/goalboard/internal/seed"
	"github.com/stafflens/goalboard/internal/store"
	memorystore "github.com/stafflens/goalboard/internal/store/memory"
	postgresstore "github.com/stafflens/goalboard/internal/store/postgres"
	"github.com/stafflens/goalboard/internal/telemetry"
	"github.com/stafflens/goalboard/internal/tenant"
)

type ServerCmd struct {
	// Server configuration
	Listen string `help:"HTTP server listen address" default:"0.0.0.0:8080" env:"GOALBOARD_LISTEN"`
	Cert   string `help:"path to TLS cert file" default:"" env:"GOALBOARD_TLS_CERT"`
	Key    string `help:"path to TLS key file" default:"" env:"GOALBOARD_TLS_KEY"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"https://localhost" env:"GOALBOARD_CORS_ORIGINS"`

	// Auth configuration
	TokenSecret string `help:"shared secret for access token verification" default:"" env:"GOALBOARD_TOKEN_SECRET"`

	// Development and operational modes
	NoAuth       bool   `help:"disable authentication for API endpoints (development only)" default:"false" env:"GOALBOARD_NO_AUTH"`
	DevPrincipal string `help:"principal ID injected into requests when auth is disabled" default:"" env:"GOALBOARD_DEV_PRINCIPAL"`
	Tracing      bool   `help:"enable tracing and metrics export" default:"false" env:"GOALBOARD_TRACING"`

	// Store configuration
	StoreType     string             `help:"store type (memory or postgres)" default:"memory" env:"GOALBOARD_STORE_TYPE" enum:"memory,postgres"`
	PostgresStore PostgresStoreFlags `embed:"" prefix:"postgres-"`

	// Seed configuration
	SeedFile string `help:"seed file applied at startup (demo/development)" default:"" env:"GOALBOARD_SEED_FILE"`
}

type PostgresStoreFlags struct {
	// Connection Configuration
	ConnString string `help:"PostgreSQL connection string" env:"POSTGRES_CONNECTION_STRING"`

	// Connection Pool Configuration
	MaxConns        int32 `help:"maximum number of connections in pool" default:"20"`
	MinConns        int32 `help:"minimum number of connections in pool" default:"5"`
	MaxConnLifetime int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime int32 `help:"maximum connection idle time in seconds" default:"1800"`

	// Migration Configuration
	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"GOALBOARD_POSTGRES_AUTO_MIGRATE"`
}

func (s *PostgresStoreFlags) Validate() error {
	if s.ConnString == "" {
		return errors.New("PostgreSQL connection string is required (--postgres-conn-string or POSTGRES_CONNECTION_STRING)")
	}
	return nil
}

// stores collects every store the server wires together.
type stores struct {
	organizations store.OrganizationStore
	principals    store.PrincipalStore
	memberships   store.MembershipStore
	goals         store.GoalsStore
	audit         store.AuditStore
}

func (c *ServerCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx := context.Background()

	log.Info().Str("version", globals.Version).Bool("debug", globals.Debug).Msg("Starting server")

	if c.Tracing {
		log.Info().Msg("Tracing is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, "goalboard-server", globals.Version)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without metrics")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	st, cleanup, err := c.buildStores(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if c.SeedFile != "" {
		seedFile, err := seed.Load(c.SeedFile)
		if err != nil {
			return err
		}
		err = seedFile.Apply(ctx, seed.Stores{
			Organizations: st.organizations,
			Principals:    st.principals,
			Memberships:   st.memberships,
			Goals:         st.goals,
		})
		if err != nil {
			return fmt.Errorf("failed to apply seed file: %w", err)
		}
	}

	directory := tenant.NewDirectory(st.memberships, st.organizations)
	handler := api.NewHandler(directory, st.goals, st.memberships, st.principals, st.audit)

	apiMux := http.NewServeMux()
	handler.Register(apiMux)

	authMiddleware, err := c.buildAuthMiddleware(globals)
	if err != nil {
		return err
	}

	clientIPMiddleware := httpmiddleware.ClientIPMiddleware()

	mux := http.NewServeMux()
	mux.Handle("/api/", clientIPMiddleware(authMiddleware(apiMux)))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"status":"ok"}`)
	})

	// CORS for API routes only, response compression and request logging
	// for everything
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			withCORS(c.CORSOrigins, mux).ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	wrapped := logger.Requests(log)(gzhttp.GzipHandler(root))

	if c.Cert != "" || c.Key != "" {
		if _, err := os.Stat(c.Cert); err != nil {
			return fmt.Errorf("TLS certificate not found at %s: %w", c.Cert, err)
		}
		if _, err := os.Stat(c.Key); err != nil {
			return fmt.Errorf("TLS key not found at %s: %w", c.Key, err)
		}
		log.Info().Str("addr", c.Listen).Bool("auth", !c.NoAuth).Msg("Starting HTTPS server")
		return configureHTTPServer(c.Listen, wrapped).ListenAndServeTLS(c.Cert, c.Key)
	}

	log.Info().Str("addr", c.Listen).Bool("auth", !c.NoAuth).Msg("Starting HTTP server")
	return configureHTTPServer(c.Listen, wrapped).ListenAndServe()
}

// buildStores creates the store set for the configured backend. The cleanup
// function closes the shared pool when one was created.
func (c *ServerCmd) buildStores(ctx context.Context) (*stores, func(), error) {
	switch c.StoreType {
	case "postgres":
		if err := c.PostgresStore.Validate(); err != nil {
			return nil, nil, err
		}

		poolCfg := &postgresstore.PoolConfig{
			ConnString:      c.PostgresStore.ConnString,
			MaxConns:        c.PostgresStore.MaxConns,
			MinConns:        c.PostgresStore.MinConns,
			MaxConnLifetime: c.PostgresStore.MaxConnLifetime,
			MaxConnIdleTime: c.PostgresStore.MaxConnIdleTime,
		}
		pool, err := postgresstore.NewPool(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}

		if c.PostgresStore.AutoMigrate {
			if err := postgresstore.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		return &stores{
			organizations: postgresstore.NewOrganizationStore(pool),
			principals:    postgresstore.NewPrincipalStore(pool),
			memberships:   postgresstore.NewMembershipStore(pool),
			goals:         postgresstore.NewGoalsStore(pool),
			audit:         postgresstore.NewAuditStore(pool),
		}, pool.Close, nil

	default:
		return &stores{
			organizations: memorystore.NewOrganizationStore(),
			principals:    memorystore.NewPrincipalStore(),
			memberships:   memorystore.NewMembershipStore(),
			goals:         memorystore.NewGoalsStore(),
			audit:         memorystore.NewAuditStore(),
		}, func() {}, nil
	}
}

// buildAuthMiddleware returns the bearer-token middleware, or the dev
// principal injector when auth is disabled.
func (c *ServerCmd) buildAuthMiddleware(globals *Globals) (func(http.Handler) http.Handler, error) {
	if c.NoAuth {
		if c.DevPrincipal == "" {
			return nil, errors.New("--dev-principal is required when auth is disabled")
		}
		principalID, err := uuid.Parse(c.DevPrincipal)
		if err != nil {
			return nil, fmt.Errorf("invalid dev principal ID: %w", err)
		}
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := auth.WithPrincipal(r.Context(), &auth.Principal{PrincipalID: principalID})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}, nil
	}

	signer, err := auth.NewTokenSigner([]byte(c.TokenSecret))
	if err != nil {
		return nil, fmt.Errorf("invalid token secret (--token-secret or GOALBOARD_TOKEN_SECRET): %w", err)
	}
	return signer.Middleware(), nil
}

// withCORS adds CORS support for browser clients of the API.
func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return middleware.Handler(h)
}
