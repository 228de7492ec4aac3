package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"coachly/config"
	bookingRepo "coachly/database/repository/booking"
	intervalRepo "coachly/database/repository/interval"
	"coachly/models"
	"coachly/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitCompletionWorker runs the async worker in background.
func InitCompletionWorker(bookings bookingRepo.BookingRepository, intervals intervalRepo.IntervalRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
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
	mux.HandleFunc(tasks.TypeBookingComplete, handleCompletionTask(bookings, intervals))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[CompletionWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CompletionWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CompletionWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleCompletionTask(bookings bookingRepo.BookingRepository, intervals intervalRepo.IntervalRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.CompletionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CompletionHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		done, err := bookings.CompleteIfEnded(ctx, p.BookingID, time.Now().UTC())
		if err != nil {
			log.Printf("[CompletionHandler] ❌ Failed to complete booking %s: %v", p.BookingID, err)
			return err
		}
		if !done {
			return nil
		}

		// The completed booking no longer occupies time; drop its interval
		// projection so overlap scans stop seeing it.
		if b, err := bookings.GetByID(ctx, p.BookingID); err == nil && b != nil {
			if err := intervals.DeleteByID(ctx, b.CoachID, p.BookingID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				log.Printf("[CompletionHandler] ⚠️ Failed to drop interval for booking %s: %v", p.BookingID, err)
			}
		}
		log.Printf("[CompletionHandler] ✅ Booking %s marked completed", p.BookingID)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CompletionWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
