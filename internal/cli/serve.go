package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtree/internal/api"
	"github.com/matzehuels/radialtree/pkg/cache"
	"github.com/matzehuels/radialtree/pkg/observability"
	"github.com/matzehuels/radialtree/pkg/pipeline"
	"github.com/matzehuels/radialtree/pkg/store"
)

// Environment variables read by serve. Flags take precedence.
const (
	envAddr        = "RADIALTREE_ADDR"
	envRedisURL    = "RADIALTREE_REDIS_URL"
	envCachePrefix = "RADIALTREE_CACHE_PREFIX"
	envMongoURI    = "RADIALTREE_MONGO_URI"
	envMongoDB     = "RADIALTREE_MONGO_DB"
	envStoreDir    = "RADIALTREE_STORE_DIR"
)

const defaultAddr = ":8080"

// serveConfig selects the server address and backends.
type serveConfig struct {
	Addr        string
	RedisURL    string
	CachePrefix string
	MongoURI    string
	MongoDB     string
	StoreDir    string
	NoCache     bool
}

// serveConfigFromEnv reads the environment, after loading envFile when it
// exists. Variables already set in the process win over the file.
func serveConfigFromEnv(envFile string) (serveConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return serveConfig{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg := serveConfig{
		Addr:        os.Getenv(envAddr),
		RedisURL:    os.Getenv(envRedisURL),
		CachePrefix: os.Getenv(envCachePrefix),
		MongoURI:    os.Getenv(envMongoURI),
		MongoDB:     os.Getenv(envMongoDB),
		StoreDir:    os.Getenv(envStoreDir),
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = appName
	}
	return cfg, nil
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		envFile string
		flags   serveConfig
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Configuration comes from the environment, optionally loaded from a .env file:

  RADIALTREE_ADDR          listen address (default :8080)
  RADIALTREE_REDIS_URL     shared layout cache; local file cache when unset
  RADIALTREE_CACHE_PREFIX  key namespace inside Redis
  RADIALTREE_MONGO_URI     layout store; RADIALTREE_STORE_DIR or memory when unset
  RADIALTREE_MONGO_DB      database name (default radialtree)
  RADIALTREE_STORE_DIR     directory for the file layout store

Flags override the environment.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := serveConfigFromEnv(envFile)
			if err != nil {
				return err
			}
			cfg = overlayServeFlags(cmd, cfg, flags)
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	cmd.Flags().StringVar(&flags.Addr, "addr", "", "listen address")
	cmd.Flags().StringVar(&flags.RedisURL, "redis-url", "", "Redis URL for the layout cache")
	cmd.Flags().StringVar(&flags.MongoURI, "mongo-uri", "", "MongoDB URI for the layout store")
	cmd.Flags().StringVar(&flags.MongoDB, "mongo-db", "", "MongoDB database")
	cmd.Flags().StringVar(&flags.StoreDir, "store-dir", "", "directory for the file layout store")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "disable caching")

	return cmd
}

func overlayServeFlags(cmd *cobra.Command, cfg, flags serveConfig) serveConfig {
	changed := cmd.Flags().Changed
	if changed("addr") {
		cfg.Addr = flags.Addr
	}
	if changed("redis-url") {
		cfg.RedisURL = flags.RedisURL
	}
	if changed("mongo-uri") {
		cfg.MongoURI = flags.MongoURI
	}
	if changed("mongo-db") {
		cfg.MongoDB = flags.MongoDB
	}
	if changed("store-dir") {
		cfg.StoreDir = flags.StoreDir
	}
	cfg.NoCache = flags.NoCache
	return cfg
}

func (c *CLI) runServe(ctx context.Context, cfg serveConfig) error {
	ch, keyer, err := c.serveCache(ctx, cfg)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	defer runner.Close()

	st, err := c.serveStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	counters := observability.NewCounters()
	observability.Register(counters)
	defer observability.Reset()

	srv := api.New(api.Config{Runner: runner, Store: st, Logger: c.Logger, Stats: counters})
	err = srv.ListenAndServe(ctx, cfg.Addr)
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// serveCache picks Redis, the local file cache, or no cache.
func (c *CLI) serveCache(ctx context.Context, cfg serveConfig) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewScopedKeyer(nil, cfg.CachePrefix)
	switch {
	case cfg.NoCache:
		return cache.NewNullCache(), keyer, nil
	case cfg.RedisURL != "":
		p := newProgress(c.Logger)
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{URL: cfg.RedisURL})
		if err != nil {
			return nil, nil, err
		}
		p.done("Connected to redis")
		return rc, keyer, nil
	}
	fc, err := newCache(false)
	return fc, keyer, err
}

// serveStore picks MongoDB, a file store, or memory.
func (c *CLI) serveStore(ctx context.Context, cfg serveConfig) (store.Store, error) {
	switch {
	case cfg.MongoURI != "":
		p := newProgress(c.Logger)
		ms, err := store.NewMongoStore(ctx, store.MongoOptions{URI: cfg.MongoURI, Database: cfg.MongoDB})
		if err != nil {
			return nil, err
		}
		p.done("Connected to mongo")
		return ms, nil
	case cfg.StoreDir != "":
		return store.NewFileStore(cfg.StoreDir)
	}
	c.Logger.Warn("no layout store configured; layouts are kept in memory")
	return store.NewMemoryStore(), nil
}
