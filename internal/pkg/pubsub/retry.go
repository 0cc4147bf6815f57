package pubsub

import (
	"context"
	"log"
	"time"
)

// ConnectWithRetry 以固定间隔重试连接，全部失败时返回 false
func ConnectWithRetry(ctx context.Context, c Connector, attempts int, delay time.Duration, logger *log.Logger) bool {
	for attempt := 1; attempt <= attempts; attempt++ {
		err := c.Connect(ctx)
		if err == nil {
			logger.Printf("Connected on attempt %d/%d", attempt, attempts)
			return true
		}

		logger.Printf("Connect attempt %d/%d failed: %v", attempt, attempts, err)
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}
	}

	logger.Printf("Giving up after %d attempts", attempts)
	return false
}
