package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"

	"github.com/devconnect/devconnect-backend/internal/assistant"
	"github.com/devconnect/devconnect-backend/internal/cache"
	"github.com/devconnect/devconnect-backend/internal/config"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/events"
	"github.com/devconnect/devconnect-backend/internal/handler"
	"github.com/devconnect/devconnect-backend/internal/hub"
	"github.com/devconnect/devconnect-backend/internal/middleware"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/internal/service"
	"github.com/devconnect/devconnect-backend/pkg/database"
	"github.com/devconnect/devconnect-backend/pkg/jwt"
	pkglog "github.com/devconnect/devconnect-backend/pkg/log"
	"github.com/devconnect/devconnect-backend/pkg/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "devconnect-backend",
	})
	logger := pkglog.L()

	// Connect to database using GORM
	db, err := database.New(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.EnsureVectorExtension(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to install pgvector extension")
	}

	if err := database.AutoMigrate(db,
		&domain.UserModel{},
		&domain.ProjectModel{},
		&domain.ApplicationModel{},
		&domain.CommunityModel{},
		&domain.MembershipModel{},
		&domain.MessageModel{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	projectRepo := repository.NewGormProjectRepository(db)
	applicationRepo := repository.NewGormApplicationRepository(db)
	communityRepo := repository.NewGormCommunityRepository(db)
	membershipRepo := repository.NewGormMembershipRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)
	vectorRepo := repository.NewPgvectorSearchRepository(db)

	// Redis caches
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	historyCache := cache.NewRedisHistoryCache(redisClient, "history")
	searchCache := cache.NewRedisSearchCache(redisClient, "assistant")
	logger.Info().Msg("redis connected")

	// Tokens
	tokenManager, err := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessDuration, cfg.JWT.RefreshDuration, cfg.JWT.Issuer)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create jwt manager")
	}

	// Object storage
	store, err := buildStorage(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// Keyword search index (optional)
	var searchIndex repository.SearchIndexRepository
	if cfg.Elasticsearch.Enabled {
		esClient, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: strings.Split(cfg.Elasticsearch.Addresses, ","),
			Username:  cfg.Elasticsearch.Username,
			Password:  cfg.Elasticsearch.Password,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create elasticsearch client")
		}
		searchIndex = repository.NewESSearchRepository(esClient, repository.IndexDevelopers, repository.IndexProjects)
		logger.Info().Msg("elasticsearch connected")
	}

	// Assistant clients
	embedder := assistant.NewEmbeddingClient(cfg.Assistant.Embedding)
	completer := assistant.NewCompletionClient(cfg.Assistant.Completion)
	extractor := assistant.NewIntentExtractor(completer)

	// Embedding refresh pipeline
	refresher := service.NewEmbeddingRefresher(userRepo, projectRepo, embedder, searchIndex)

	var producer events.RefreshProducer
	var consumer *events.KafkaRefreshConsumer
	if cfg.Kafka.Enabled {
		kafkaProducer, err := events.NewKafkaRefreshProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create kafka producer")
		}
		producer = kafkaProducer

		consumer, err = events.NewKafkaRefreshConsumer(cfg.Kafka, refresher)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create kafka consumer")
		}
	} else {
		producer = events.NewInlineRefreshProducer(refresher)
	}
	defer producer.Close()

	// Services
	userService := service.NewUserService(userRepo, tokenManager, store, producer, cfg.Storage.PresignExpiry)
	projectService := service.NewProjectService(projectRepo, applicationRepo, producer)
	communityService := service.NewCommunityService(communityRepo, membershipRepo)
	historyService := service.NewHistoryService(messageRepo, membershipRepo, historyCache, cfg.Cache.HistoryTTL)
	semanticSearch := service.NewSemanticSearchService(embedder, vectorRepo)
	assistantService := service.NewAssistantService(extractor, semanticSearch, searchCache, cfg.Cache.SearchTTL, cfg.Assistant.MaxResults)

	// WebSocket hub
	chatHub := hub.NewHub(cfg.WebSocket)
	go chatHub.Run()
	chatRoomService := service.NewChatRoomService(chatHub, tokenManager, membershipRepo, messageRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(tokenManager)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	handler.NewAuthHandler(userService).RegisterRoutes(r)
	handler.NewUserHandler(userService, authMiddleware).RegisterRoutes(r)
	handler.NewProjectHandler(projectService, authMiddleware).RegisterRoutes(r)
	handler.NewCommunityHandler(communityService, historyService, authMiddleware).RegisterRoutes(r)
	handler.NewAssistantHandler(assistantService, authMiddleware).RegisterRoutes(r)
	handler.NewWSHandler(chatHub, chatRoomService, cfg.WebSocket).RegisterRoutes(r)
	if searchIndex != nil {
		keywordCache := cache.NewRedisKeywordCache(redisClient, "keyword")
		handler.NewSearchHandler(service.NewKeywordSearchService(searchIndex, keywordCache, cfg.Cache.SearchTTL)).RegisterRoutes(r)
	}
	if cfg.Storage.Backend == "local" {
		handler.NewMediaHandler(store).RegisterRoutes(r)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if consumer != nil {
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error().Err(err).Msg("refresh consumer stopped")
			}
		}()
		defer consumer.Close()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		logger.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Msg("devconnect-backend starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
}

func buildStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.Storage.Backend == "s3" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKey,
			SecretAccessKey: cfg.Storage.SecretKey,
			UsePathStyle:    cfg.Storage.ForcePathStyle,
		})
	}
	return storage.NewLocalStorage(storage.LocalConfig{
		BasePath: cfg.Storage.LocalBasePath,
		BaseURL:  cfg.Storage.LocalBaseURL,
	})
}
