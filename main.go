package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hireboard/domain/model"
	"hireboard/domain/repository"
	"hireboard/infrastructure/cache"
	"hireboard/infrastructure/clients/social"
	"hireboard/infrastructure/configuration"
	"hireboard/infrastructure/logger"
	"hireboard/infrastructure/persistence"
	"hireboard/infrastructure/pubsub"
	"hireboard/infrastructure/realtime"
	"hireboard/infrastructure/requeue"
	"hireboard/infrastructure/sealed"
	httpHandler "hireboard/interfaces/http"
	"hireboard/server"
	"hireboard/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	dispatchDb, usingMSSQL, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Database initialization failed")
		os.Exit(1)
	}
	if !usingMSSQL {
		if err := persistence.EnsureSocialSchema(dispatchDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring social schema")
		}
	}

	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB not available - continuing without the audit trail")
		mongoDb = nil
	} else if err := mongoDb.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB ping failed - continuing without the audit trail")
		mongoDb = nil
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - status endpoint will omit last results")
		redisClient = nil
	}

	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID, configuration.C.Pubsub.CredentialsFile)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("PubSub not available - continuing without outcome events")
		pubSubClient = nil
	}

	serviceBusClient, err := requeue.NewServiceBus(ctx, configuration.C.ServiceBus.Namespace)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Service Bus not available - transient failures will not be retried")
		serviceBusClient = nil
	}

	// Repository wiring: MSSQL in production, otherwise PostgreSQL.
	var accountRepo repository.ISocialAccount
	var postRepo repository.ISocialPost
	if usingMSSQL {
		accountRepo = persistence.NewSocialAccountRepositoryMSSQL(dispatchDb)
		postRepo = persistence.NewSocialPostRepositoryMSSQL(dispatchDb)
	} else {
		accountRepo = persistence.NewSocialAccountRepository(dispatchDb)
		postRepo = persistence.NewSocialPostRepository(dispatchDb)
	}

	// The ATS jobs table lives in MySQL; the requeue worker re-reads job
	// summaries from it before re-dispatching.
	var jobRepo repository.IJob
	if jobsDb, err := persistence.NewJobsDb(); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Jobs database not available - requeue worker disabled")
	} else {
		jobRepo = persistence.NewJobRepository(jobsDb)
	}

	var box *sealed.Box
	if configuration.C.Social.SealKey != "" {
		key, err := sealed.KeyFromString(configuration.C.Social.SealKey)
		if err == nil {
			box, err = sealed.NewBox(key)
		}
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Invalid SOCIAL_SEAL_KEY; sealed credentials cannot be opened")
			box = nil
		}
	}

	registry := buildRegistry(configuration.C.Social)
	requeueClient := requeue.NewServiceBusRequeue(serviceBusClient, configuration.C.ServiceBus.RequeueQueue)

	dispatchUsecase := usecase.NewSocialDispatchUsecase(
		registry,
		accountRepo,
		postRepo,
		requeueClient,
		box,
		time.Duration(configuration.C.Social.BranchTimeoutSec)*time.Second,
	)
	if mongoDb != nil {
		dispatchUsecase = dispatchUsecase.WithAudit(persistence.NewDispatchAuditRepository(mongoDb))
	}
	if redisClient != nil {
		dispatchUsecase = dispatchUsecase.WithResultCache(cache.NewResultCache(redisClient))
	}
	if pubSubClient != nil {
		dispatchUsecase = dispatchUsecase.WithEvents(pubsub.NewDispatchEvents(pubSubClient, configuration.C.Pubsub.OutcomeTopic))
	}
	dispatchHub := realtime.NewDispatchHub()
	dispatchUsecase = dispatchUsecase.WithBroadcaster(dispatchHub.BroadcastDispatch)

	socialHandler := httpHandler.NewSocialHandler(dispatchUsecase)
	healthHandler := httpHandler.NewHealthHandler(dispatchDb, redisClient)

	router := server.InitiateRouter(socialHandler, healthHandler, dispatchHub)

	// Scheduled-queue consumer: re-runs the dispatcher for delayed tasks.
	if serviceBusClient != nil && jobRepo != nil {
		queue := configuration.C.ServiceBus.RequeueQueue
		g.Go(func() error {
			return requeue.RunWorker(ctx, serviceBusClient, queue, jobRepo, func(ctx context.Context, task *model.RequeueTask) ([]*model.SocialResult, error) {
				return dispatchUsecase.Dispatch(ctx, &usecase.DispatchInput{
					Job:            task.Job,
					TeamID:         task.TeamID,
					OrganizationID: task.OrganizationID,
					Platforms:      task.Platforms,
					Media:          task.Media,
				})
			})
		})
	}

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateDatabase opens the dispatch store. Production runs on Azure SQL;
// everywhere else uses PostgreSQL.
func InitiateDatabase() (*sql.DB, bool, error) {
	env := os.Getenv("ENV")
	if v := os.Getenv("DB_VENDOR"); v == "mssql" || env == "production" || env == "prod" {
		db, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot connect to MSSQL")
			return nil, false, err
		}
		return db, true, nil
	}
	db, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to PostgreSQL")
		return nil, false, err
	}
	return db, false, nil
}

func buildRegistry(cfg configuration.Social) *social.Registry {
	var publishers []repository.IPublisher
	for _, platform := range cfg.Platforms {
		switch platform {
		case "website":
			publishers = append(publishers, social.NewWebsite())
		case "linkedin":
			publishers = append(publishers, social.NewLinkedIn(cfg.OAuth.LinkedIn.ClientID, cfg.OAuth.LinkedIn.ClientSecret))
		case "facebook":
			publishers = append(publishers, social.NewFacebook())
		case "x":
			publishers = append(publishers, social.NewX())
		default:
			logger.GetLogger().WithField("platform", platform).Warn("Unknown platform in configuration; skipping")
		}
	}
	return social.NewRegistry(publishers...)
}
