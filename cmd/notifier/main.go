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

	"github.com/qs3c/debook/config"
	"github.com/qs3c/debook/internal/api"
	"github.com/qs3c/debook/internal/api/handler"
	"github.com/qs3c/debook/internal/database"
	"github.com/qs3c/debook/internal/pkg/logger"
	"github.com/qs3c/debook/internal/pkg/pubsub"
	"github.com/qs3c/debook/internal/repository"
	"github.com/qs3c/debook/internal/service"
	"github.com/qs3c/debook/internal/worker"
)

func main() {
	configPath := flag.String("config", "config/notifier.yaml", "path to config file")
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

	if err := database.MigrateNotifications(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化事件订阅者
	var subscriber pubsub.Subscriber
	switch cfg.Broker.Driver {
	case config.BrokerRedis, config.BrokerRedisQueue:
		rdb, err := database.NewRedis(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect redis: %v", err)
		}
		defer rdb.Close()
		if cfg.Broker.Driver == config.BrokerRedisQueue {
			subscriber = pubsub.NewQueueSubscriber(rdb, cfg.Broker.Topic)
		} else {
			subscriber = pubsub.NewRedisSubscriber(rdb, cfg.Broker.Topic)
		}
	case config.BrokerKafka:
		subscriber = pubsub.NewKafkaSubscriber(&cfg.Kafka, cfg.Broker.Topic, logger.New("kafka"))
	default:
		log.Fatalf("Unsupported broker driver: %q", cfg.Broker.Driver)
	}

	// 初始化 Service
	notificationService := service.NewNotificationService(
		repository.NewNotificationRepository(db),
		logger.New("notifications"),
	)

	// 启动消费者，连接失败不影响 HTTP 服务
	consumer := worker.NewConsumer(subscriber, notificationService, worker.ConsumerConfig{
		ConnectRetries:    cfg.Kafka.ConnectRetries,
		ConnectRetryDelay: cfg.Kafka.ConnectRetryDelay,
	}, logger.New("consumer"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Printf("Warning: %v", err)
		}
	}()

	healthHandler := handler.NewHealthHandler(cfg.Server.Name, map[string]handler.Pinger{
		"database": handler.PingFunc(func(ctx context.Context) error { return database.Ping(ctx, db) }),
		"consumer": consumer,
	})

	router := api.NewNotifierRouter(
		handler.NewNotificationHandler(notificationService),
		healthHandler,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router.Setup(),
	}

	go func() {
		log.Printf("Notifier server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Received shutdown signal")

	cancel()
	if err := consumer.Stop(); err != nil {
		log.Printf("Consumer close error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Notifier shutdown complete")
}
