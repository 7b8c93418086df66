package background

import (
	"context"
	"log"
	"sync"
	"time"

	"licentra/internal/ratelimit"
	"licentra/internal/repositories"
	"licentra/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages the periodic maintenance jobs: sweeping expired API
// keys and evicting idle in-memory state. All jobs are best effort; a failed
// run logs and waits for the next tick.
type JobScheduler struct {
	scheduler     gocron.Scheduler
	apiKeyRepo    repositories.APIKeyRepository
	activationSvc services.ActivationService
	memoryLimiter *ratelimit.MemoryLimiter
	jobs          map[string]gocron.Job
	mu            sync.RWMutex
}

// NewJobScheduler creates the scheduler. memoryLimiter may be nil when the
// Redis limiter is in use; the eviction job is skipped in that case.
func NewJobScheduler(apiKeyRepo repositories.APIKeyRepository, activationSvc services.ActivationService,
	memoryLimiter *ratelimit.MemoryLimiter) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:     scheduler,
		apiKeyRepo:    apiKeyRepo,
		activationSvc: activationSvc,
		memoryLimiter: memoryLimiter,
		jobs:          make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Expired API key sweep - every hour
	keySweepJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.sweepExpiredAPIKeys, context.Background()),
		gocron.WithName("api-key-expiry-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create API key sweep job: %v", err)
	} else {
		js.jobs["api-key-sweep"] = keySweepJob
	}

	// Idle activation lock eviction - every 10 minutes
	lockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(js.evictIdleActivationLocks),
		gocron.WithName("activation-lock-eviction"),
	)
	if err != nil {
		log.Printf("Failed to create lock eviction job: %v", err)
	} else {
		js.jobs["lock-eviction"] = lockJob
	}

	// Rate limit bucket eviction - every 10 minutes, in-memory limiter only
	if js.memoryLimiter != nil {
		bucketJob, err := js.scheduler.NewJob(
			gocron.DurationJob(10*time.Minute),
			gocron.NewTask(js.evictStaleRateLimitBuckets),
			gocron.WithName("ratelimit-bucket-eviction"),
		)
		if err != nil {
			log.Printf("Failed to create bucket eviction job: %v", err)
		} else {
			js.jobs["bucket-eviction"] = bucketJob
		}
	}

	log.Printf("Registered %d background jobs", len(js.jobs))
}

// sweepExpiredAPIKeys marks keys past their expires_at as revoked so the
// authentication path never has to reason about expiry and revocation
// separately after the fact.
func (js *JobScheduler) sweepExpiredAPIKeys(ctx context.Context) error {
	swept, err := js.apiKeyRepo.RevokeExpired(ctx)
	if err != nil {
		log.Printf("Failed to sweep expired API keys: %v", err)
		return err
	}
	if swept > 0 {
		log.Printf("Revoked %d expired API keys", swept)
	}
	return nil
}

func (js *JobScheduler) evictIdleActivationLocks() error {
	evicted := js.activationSvc.EvictIdleLocks(30 * time.Minute)
	if evicted > 0 {
		log.Printf("Evicted %d idle activation locks", evicted)
	}
	return nil
}

func (js *JobScheduler) evictStaleRateLimitBuckets() error {
	evicted := js.memoryLimiter.Evict(30 * time.Minute)
	if evicted > 0 {
		log.Printf("Evicted %d stale rate limit buckets", evicted)
	}
	return nil
}

// GetJobStatus returns information about scheduled jobs
func (js *JobScheduler) GetJobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	status := make(map[string]interface{})
	status["total_jobs"] = len(js.jobs)
	jobs := make([]string, 0, len(js.jobs))

	for name := range js.jobs {
		jobs = append(jobs, name)
	}

	status["jobs"] = jobs

	return status
}
