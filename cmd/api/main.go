package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/qs3c/debook/config"
	"github.com/qs3c/debook/internal/api"
	"github.com/qs3c/debook/internal/api/handler"
	"github.com/qs3c/debook/internal/database"
	"github.com/qs3c/debook/internal/pkg/logger"
	"github.com/qs3c/debook/internal/pkg/pubsub"
	"github.com/qs3c/debook/internal/repository"
	"github.com/qs3c/debook/internal/service"
)

func main() {
	configPath := flag.String("config", "config/api.yaml", "path to config file")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.New(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer database.Close(db)
	log.Println("Database connected")

	if err := database.MigratePosts(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化事件发布者
	var rdb *redis.Client
	var publisher pubsub.Publisher
	switch cfg.Broker.Driver {
	case config.BrokerRedis, config.BrokerRedisQueue:
		rdb, err = database.NewRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect redis: %v", err)
		}
		defer rdb.Close()
		if cfg.Broker.Driver == config.BrokerRedisQueue {
			publisher = pubsub.NewQueuePublisher(rdb, cfg.Broker.Topic)
		} else {
			publisher = pubsub.NewRedisPublisher(rdb, cfg.Broker.Topic)
		}
	case config.BrokerKafka:
		publisher = pubsub.NewKafkaPublisher(&cfg.Kafka, cfg.Broker.Topic)
	default:
		log.Fatalf("Unsupported broker driver: %q", cfg.Broker.Driver)
	}
	defer publisher.Close()

	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := publisher.Start(startCtx); err != nil {
		// 写入仍然可用，事件发布会失败并返回 500
		log.Printf("Warning: %s broker not reachable: %v", cfg.Broker.Driver, err)
	} else {
		log.Printf("Producer connected to %s topic %s", cfg.Broker.Driver, cfg.Broker.Topic)
	}
	startCancel()

	producer := pubsub.NewInteractionProducer(publisher, logger.New("producer"))

	// 初始化 Repository
	postRepo := repository.NewPostRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)

	// 初始化 Service
	postService := service.NewPostService(postRepo)
	interactionService := service.NewInteractionService(postService, interactionRepo, producer, logger.New("interactions"))

	// 初始化 Handler
	healthHandler := handler.NewHealthHandler(cfg.Server.Name, map[string]handler.Pinger{
		"database": handler.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		"broker":   producer,
	})

	router := api.NewAPIRouter(
		handler.NewPostHandler(postService),
		handler.NewInteractionHandler(interactionService),
		healthHandler,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Setup(),
	}

	go func() {
		log.Printf("API server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("API server shutdown complete")
}
