package http

import (
	"context"
	"fmt"
	stdhttp "net/http"

	log "github.com/sirupsen/logrus"

	"microblog/internal/config"
	"microblog/internal/database"
	"microblog/internal/handler"
	"microblog/internal/httputil"
	"microblog/internal/metrics"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/storage"
)

// Run wires the whole application together and serves until the listener
// fails. Dependencies flow top-down: config -> db/storage -> repositories ->
// services -> handlers -> router. Nothing global.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	configureLogging(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	ctx := context.Background()

	store, err := storage.New(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	userService := service.NewUserService(userRepo, followRepo, cfg.TestUser)
	followService := service.NewFollowService(followRepo, userRepo)
	tweetService := service.NewTweetService(tweetRepo, store, cfg.MaxTweetLength)
	mediaService := service.NewMediaService(attachmentRepo, store, cfg.Media)

	// The identity fallback contract depends on this row existing.
	if _, err := userService.EnsureTestUser(ctx); err != nil {
		return fmt.Errorf("failed to ensure test user: %w", err)
	}

	writer := httputil.NewWriter(cfg.Debug)
	m := metrics.InitMetrics()

	router := NewRouter(RouterConfig{
		UserHandler:   handler.NewUserHandler(userService, writer),
		FollowHandler: handler.NewFollowHandler(followService, writer, m),
		TweetHandler:  handler.NewTweetHandler(tweetService, writer, m),
		MediaHandler:  handler.NewMediaHandler(mediaService, writer, cfg.Media.MaxUploadSize),
		UserService:   userService,
		Writer:        writer,
	})

	addr := ":" + cfg.ServerPort
	log.Infof("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}

func configureLogging(cfg *config.Config) {
	log.SetFormatter(&log.JSONFormatter{})

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
