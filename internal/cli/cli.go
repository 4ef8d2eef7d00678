// Package cli implements the craftlens command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/craftlens/craftlens/pkg/buildinfo"
	"github.com/craftlens/craftlens/pkg/cache"
	"github.com/craftlens/craftlens/pkg/pipeline"
	"github.com/craftlens/craftlens/pkg/relation"
	"github.com/craftlens/craftlens/pkg/source"
	"github.com/craftlens/craftlens/pkg/source/local"
	"github.com/craftlens/craftlens/pkg/source/mongo"
	"github.com/craftlens/craftlens/pkg/translate"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "craftlens"

	// defaultDataFile is the dataset location when no source flag is given.
	defaultDataFile = "data/entities.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Craftlens renders crafting-relationship diagrams",
		Long:         `Craftlens builds interactive crafting-relationship diagrams from a game-wiki dataset: for any item or trader it lays out what it is made from, what it breaks into, and who trades it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Dataset Flags
// =============================================================================

// dataOpts holds the flags shared by every command that needs a dataset.
type dataOpts struct {
	data      string // local JSON dataset file
	mongoURI  string // MongoDB connection string; takes precedence over data
	mongoDB   string // MongoDB database name
	mongoColl string // MongoDB collection name
	locales   string // directory of locale TOML tables
	redisAddr string // Redis address for the shared cache
	noCache   bool   // disable caching entirely
}

// register adds the shared dataset flags to cmd.
func (o *dataOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.data, "data", defaultDataFile, "dataset JSON file")
	cmd.Flags().StringVar(&o.mongoURI, "mongo-uri", os.Getenv("CRAFTLENS_MONGO_URI"), "MongoDB connection URI (overrides --data)")
	cmd.Flags().StringVar(&o.mongoDB, "mongo-db", "craftlens", "MongoDB database name")
	cmd.Flags().StringVar(&o.mongoColl, "mongo-collection", "entities", "MongoDB collection name")
	cmd.Flags().StringVar(&o.locales, "locales", "", "directory of locale TOML tables")
	cmd.Flags().StringVar(&o.redisAddr, "redis", os.Getenv("CRAFTLENS_REDIS_ADDR"), "Redis address for caching (falls back to file cache)")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
}

// openSource picks the dataset source from the flags. The returned closer is
// a no-op for local files.
func (o *dataOpts) openSource(ctx context.Context) (source.Source, func(), error) {
	if o.mongoURI != "" {
		store, err := mongo.New(ctx, mongo.Config{
			URI:        o.mongoURI,
			Database:   o.mongoDB,
			Collection: o.mongoColl,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close(context.Background()) }, nil
	}
	return local.NewFile(o.data), func() {}, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner builds a loaded pipeline runner from the dataset flags.
// The returned closer releases the source and cache.
func (c *CLI) newRunner(ctx context.Context, o *dataOpts) (*pipeline.Runner, func(), error) {
	src, closeSrc, err := o.openSource(ctx)
	if err != nil {
		return nil, nil, err
	}

	store, err := newCache(ctx, o.redisAddr, o.noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "err", err)
		store = cache.NewNullCache()
	}

	closer := func() {
		_ = store.Close()
		closeSrc()
	}

	runner := pipeline.NewRunner(src, store, c.Logger)
	if err := runner.LoadDataset(ctx); err != nil {
		closer()
		return nil, nil, err
	}

	if o.locales != "" {
		tables, err := translate.LoadDir(o.locales)
		if err != nil {
			closer()
			return nil, nil, err
		}
		runner.SetLocales(tables)
	}

	return runner, closer, nil
}

// newCache picks the cache backend: Redis when an address is given, otherwise
// the local file cache under the XDG cache directory.
func newCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/craftlens/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseCategories parses the --relations flag into an optional Selection.
// An unset flag means no filtering (nil); a set-but-empty flag means an
// empty selection, which hides every relation.
func parseCategories(value string, set bool) relation.Selection {
	if !set {
		return nil
	}
	sel := relation.NewSelection()
	for _, c := range strings.Split(value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			sel[relation.Category(c)] = struct{}{}
		}
	}
	return sel
}
