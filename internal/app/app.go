package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/match-backend/internal/cfg"
	v1Http "github.com/DRSN-tech/match-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/match-backend/internal/infrastructure/embedder"
	"github.com/DRSN-tech/match-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/match-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/match-backend/internal/repository/pgdb/converter"
	qdrantRepo "github.com/DRSN-tech/match-backend/internal/repository/qdrant"
	"github.com/DRSN-tech/match-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/match-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/match-backend/internal/usecase"
	"github.com/DRSN-tech/match-backend/pkg/clients"
	"github.com/DRSN-tech/match-backend/pkg/closer"
	"github.com/DRSN-tech/match-backend/pkg/e"
	"github.com/DRSN-tech/match-backend/pkg/logger"
	"github.com/DRSN-tech/match-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает все слои сервиса подбора и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv      *v1Http.Server
	outboxWorker *kafka.OutboxWorker
	consumer     *kafka.Consumer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(2 * time.Second),
	}

	if err := a.init(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	db, err := initPGDB(a.logger, a.cfg)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(func(ctx context.Context) error {
		db.Close()
		return nil
	})

	profileConv := pgdbConv.NewMatchProfileConverterImpl()
	criterionConv := pgdbConv.NewCriterionConverterImpl()
	embeddingConv := pgdbConv.NewEmbeddingConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	matchConv := redisConv.NewMatchResultConverterImpl()

	profileRepo := pgdb.NewProfileRepo(db.Pool, profileConv)
	prefRepo := pgdb.NewPreferenceRepo(db.Pool, criterionConv)
	embeddingRepo := pgdb.NewEmbeddingRepo(db.Pool, embeddingConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	qdrantClient, err := clients.NewQdrantClient(a.cfg.Qdrant)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	qdrantCtx, qdrantCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureCollections(qdrantCtx, qdrantClient); err != nil {
		qdrantCancel()
		return e.Wrap(whereami.WhereAmI(), err)
	}
	qdrantCancel()
	a.closer.Add(func(ctx context.Context) error {
		return qdrantClient.Client.Close()
	})

	vectorIndex := qdrantRepo.NewVectorIndexRepo(qdrantClient.Client, a.cfg.Qdrant)

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(redisCtx)
	redisCancel()
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, matchConv, a.cfg.Redis, a.logger)

	embedderInfra := embedder.NewEmbedder(a.cfg.Embedder, a.logger)

	producer, err := kafka.NewProducer(a.logger, a.cfg.Kafka)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	matchUC := usecase.NewMatchUC(
		profileRepo,
		prefRepo,
		embeddingRepo,
		vectorIndex,
		cacheRepo,
		a.logger,
		a.cfg.Matching,
	)

	profileUC := usecase.NewProfileUC(
		profileRepo,
		prefRepo,
		embeddingRepo,
		vectorIndex,
		outboxRepo,
		cacheRepo,
		embedderInfra,
		db.Pool,
		a.logger,
	)

	a.outboxWorker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, db.Dsn)
	a.consumer = kafka.NewConsumer(profileUC, a.logger, a.cfg.Kafka)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, a.logger)
	router.Init(matchUC, profileUC)

	a.httpSrv = v1Http.NewServer(r, a.cfg.Http)

	return nil
}

// Run запускает воркеры и HTTP-сервер и блокируется до сигнала остановки.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	a.outboxWorker.Start(workerCtx)
	a.consumer.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	workerCancel()
	a.outboxWorker.Stop()
	if err := a.consumer.Stop(); err != nil {
		a.logger.Warnf("Consumer shutdown error: %v", err)
	}

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Resource shutdown error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
