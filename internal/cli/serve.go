package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/planar/internal/server"
	"github.com/matzehuels/planar/pkg/cache"
	"github.com/matzehuels/planar/pkg/errors"
	"github.com/matzehuels/planar/pkg/observability"
	"github.com/matzehuels/planar/pkg/pipeline"
	"github.com/matzehuels/planar/pkg/store"
)

type serveOpts struct {
	addr     string
	redis    string
	mongo    string
	database string
	noCache  bool
	timeout  time.Duration
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     server.DefaultAddr,
		database: store.DefaultDatabase,
		timeout:  server.DefaultTimeout,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API. Built arrangements are kept in memory, or in MongoDB with
--mongo. Results are cached on disk, or in Redis with --redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis URL for the result cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for stored arrangements (e.g. mongodb://localhost:27017)")
	cmd.Flags().StringVar(&opts.database, "mongo-db", opts.database, "MongoDB database")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	ch, err := c.newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "connect to cache")
	}
	st, err := c.newStore(ctx, opts)
	if err != nil {
		_ = ch.Close()
		return err
	}

	counters := observability.NewCounters()
	observability.SetArrangementHooks(counters)
	observability.SetCacheHooks(counters)
	observability.SetHTTPHooks(counters)
	defer observability.Reset()

	srv := server.New(server.Config{
		Addr:     opts.addr,
		Runner:   pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, "server:"), logger),
		Store:    st,
		Logger:   logger,
		Counters: counters,
		Timeout:  opts.timeout,
	})
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Close(closeCtx); err != nil {
			logger.Warn("close", "err", err)
		}
	}()

	return srv.ListenAndServe(ctx)
}

func (c *CLI) newStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	if opts.mongo == "" {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(ctx, opts.mongo, opts.database)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	c.Logger.Info("using mongo store", "database", opts.database)
	return st, nil
}
