package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"servitech/config"
	notificationRepo "servitech/database/repository/notification"
	"servitech/services/notify"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitDeliveryWorker runs the async delivery worker in background.
func InitDeliveryWorker(repo notificationRepo.NotificationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notify.TypeDeliverNotification, handleDeliveryTask(repo))

	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[DeliveryWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DeliveryWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DeliveryWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleDeliveryTask marks the persisted notification as sent. Returning a
// non-nil error makes asynq retry the task.
func handleDeliveryTask(repo notificationRepo.NotificationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p notify.DeliveryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[DeliveryHandler] invalid payload: %v", err)
			return err
		}

		notif, err := repo.GetByID(ctx, p.NotificationID)
		if err != nil {
			log.Printf("[DeliveryHandler] failed to load notification %s: %v", p.NotificationID, err)
			return err
		}
		if notif.Sent {
			return nil
		}

		log.Printf("[DeliveryHandler] delivering notification %s to user %s", p.NotificationID, p.UserID)

		if err := repo.MarkSent(ctx, p.NotificationID); err != nil {
			log.Printf("[DeliveryHandler] failed to mark notification sent: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[DeliveryWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
