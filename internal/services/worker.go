package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/pkg/logger"
)

// Worker consumes ingestion tasks from the Redis queue.
type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor func(context.Context, *IngestTask) error
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

func NewWorker(cfg *config.RedisConfig) *Worker {
	if !cfg.Enabled {
		return nil
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Warnf("[Worker] Error processing task %s: %v", task.Type(), err)
			}),
		},
	)

	return &Worker{
		server: server,
		mux:    asynq.NewServeMux(),
	}
}

// SetProcessor sets the function that handles ingestion tasks.
func (w *Worker) SetProcessor(processor func(context.Context, *IngestTask) error) {
	w.processor = processor
}

// Start begins consuming tasks.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	w.mux.HandleFunc(TaskTypeIngest, w.handleIngestTask)

	w.running = true
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		logger.Infof("[Worker] Starting async worker...")
		if err := w.server.Run(w.mux); err != nil {
			logger.Errorf("[Worker] Server error: %v", err)
		}
	}()

	return nil
}

// Stop drains in-flight tasks and shuts down.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	logger.Infof("[Worker] Shutting down...")
	w.server.Shutdown()
	w.running = false
	w.wg.Wait()
	logger.Infof("[Worker] Shutdown complete")
}

func (w *Worker) handleIngestTask(ctx context.Context, t *asynq.Task) error {
	var task IngestTask
	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		logger.Errorf("[Worker] Failed to unmarshal task: %v", err)
		return err
	}

	logger.Infof("[Worker] Processing ingest task: job=%s, file=%s, size=%d",
		task.JobID, task.FileName, len(task.Data))

	if w.processor == nil {
		logger.Warnf("[Worker] no processor set")
		return nil
	}

	return w.processor(ctx, &task)
}

var (
	globalWorker *Worker
	workerOnce   sync.Once
)

// InitWorker initializes the global worker.
func InitWorker(cfg *config.RedisConfig) *Worker {
	workerOnce.Do(func() {
		globalWorker = NewWorker(cfg)
	})
	return globalWorker
}
