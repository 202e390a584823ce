package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/alan-mat/careerpath/internal/guidance"
	"github.com/alan-mat/careerpath/internal/heuristic"
	"github.com/alan-mat/careerpath/internal/provider"
	"github.com/alan-mat/careerpath/internal/remote"
	"github.com/alan-mat/careerpath/internal/searchlog"
	"github.com/alan-mat/careerpath/internal/tasks"
	"github.com/alan-mat/careerpath/server"
	"github.com/alan-mat/careerpath/worker"
)

const (
	ProgramName   = "careerpath"
	Version       = "v0.1.0"
	RepositoryUrl = "github.com/alan-mat/careerpath"
)

type serveCmd struct{}

type workerCmd struct{}

type args struct {
	Server *serveCmd  `arg:"subcommand:serve" help:"start the guidance search server"`
	Worker *workerCmd `arg:"subcommand:work" help:"start the search log worker"`

	Config string `arg:"--config,-c,env:CAREERPATH_CONFIG" default:"careerpath.yaml" help:"path to the yaml config file"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func (args) Epilogue() string {
	return fmt.Sprintf("For more information visit %s", RepositoryUrl)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: strings.ToLower(ProgramName)}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	conf, err := ReadConfig(args.Config)
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: conf.level()}))
	slog.SetDefault(logger)

	var cmd func(context.Context, *config) error

	switch p.Subcommand().(type) {
	case *serveCmd:
		cmd = startServer
	case *workerCmd:
		cmd = startWorker
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd(ctx, conf); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func startServer(ctx context.Context, conf *config) error {
	if conf.level() > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	var rdb *redis.Client
	if conf.SearchLog.Sink == sinkRedis || conf.SearchLog.Sink == sinkQueue {
		rdb = newRedisClient(conf.Redis)
		defer rdb.Close()
	}

	store, closeStore := newServerStore(ctx, conf, rdb)
	defer closeStore()

	opts := []guidance.ServiceOption{
		guidance.WithSearchLogger(searchlog.NewLogger(store, duration(conf.SearchLog.Timeout))),
	}

	gen, err := provider.New(ctx, provider.Config{
		Type:    provider.ProviderType(conf.Remote.Provider),
		APIKey:  conf.Remote.APIKey,
		BaseURL: conf.Remote.BaseURL,
		Model:   conf.Remote.Model,
	})
	switch {
	case errors.Is(err, provider.ErrMissingAPIKey):
		slog.Warn("remote resolution disabled", "provider", conf.Remote.Provider, "err", err)
	case err != nil:
		return err
	case gen == nil:
		slog.Info("remote resolution disabled", "provider", conf.Remote.Provider)
	default:
		resolver := remote.New(gen,
			remote.WithTimeout(duration(conf.Remote.Timeout)),
			remote.WithModel(conf.Remote.Model),
			remote.WithTemperature(*conf.Remote.Temperature),
		)
		opts = append(opts, guidance.WithRemoteResolver(resolver))
		slog.Info("remote resolution enabled", "provider", conf.Remote.Provider, "timeout", conf.Remote.Timeout)
	}

	svc := guidance.NewService(heuristic.New(nil), opts...)

	srv := server.New(server.ServerConfig{
		ListenHost:      conf.Server.ListenHost,
		ListenPort:      conf.Server.ListenPort,
		ShutdownTimeout: duration(conf.Server.ShutdownTimeout),
	}, svc)
	return srv.Serve(ctx)
}

func startWorker(ctx context.Context, conf *config) error {
	rdb := newRedisClient(conf.Redis)
	defer rdb.Close()

	var store searchlog.Store
	if conf.SearchLog.DatabaseURL != "" {
		pgStore, closePool, err := newPostgresStore(ctx, conf.SearchLog.DatabaseURL)
		if err != nil {
			return err
		}
		defer closePool()
		store = pgStore
	} else {
		slog.Info("no database configured, persisting searches to redis stream", "stream", conf.SearchLog.Stream)
		store = searchlog.NewRedisStore(rdb, conf.SearchLog.Stream)
	}

	w := worker.New(worker.WorkerConfig{Concurrency: conf.Worker.Workers}, rdb, store)
	return w.Start(ctx)
}

func newRedisClient(conf redisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Username: conf.Username,
		Password: conf.Password,
		DB:       conf.DB,
	})
}

// newServerStore builds the configured search log sink. Logging is best
// effort, so a sink that cannot be reached degrades to the slog sink.
func newServerStore(ctx context.Context, conf *config, rdb *redis.Client) (searchlog.Store, func()) {
	noop := func() {}

	switch conf.SearchLog.Sink {
	case sinkRedis:
		return searchlog.NewRedisStore(rdb, conf.SearchLog.Stream), noop
	case sinkQueue:
		client := asynq.NewClientFromRedisClient(rdb)
		return tasks.NewQueueStore(client), func() { client.Close() }
	case sinkPostgres:
		store, closePool, err := newPostgresStore(ctx, conf.SearchLog.DatabaseURL)
		if err != nil {
			slog.Warn("postgres search log unavailable, logging searches to stdout", "err", err)
			return searchlog.NewSlogStore(nil), noop
		}
		return store, closePool
	default:
		return searchlog.NewSlogStore(nil), noop
	}
}

func newPostgresStore(ctx context.Context, databaseURL string) (*searchlog.PostgresStore, func(), error) {
	pool, err := searchlog.NewPostgresPool(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}

	store := searchlog.NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}
