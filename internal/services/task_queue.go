package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/utkarsh/ngo-portal/backend/internal/config"
	"github.com/utkarsh/ngo-portal/backend/pkg/logger"
)

const (
	TaskTypeIngest = "ingest:bulk_report"
)

// IngestTask carries one uploaded file to the ingestion pipeline.
type IngestTask struct {
	JobID    string `json:"job_id"`
	FileName string `json:"file_name"`
	Data     []byte `json:"data"`
}

// TaskQueue dispatches ingestion work off the request path.
type TaskQueue interface {
	// Enqueue hands a task to the queue; it returns before processing.
	Enqueue(task *IngestTask) error
	// IsAsync reports whether tasks go through Redis.
	IsAsync() bool
	// Close shuts the queue down.
	Close() error
}

var (
	globalTaskQueue TaskQueue
	taskQueueOnce   sync.Once
)

// InitTaskQueue builds the global queue: asynq over Redis when enabled,
// otherwise an in-process goroutine queue.
func InitTaskQueue(cfg *config.Config) TaskQueue {
	taskQueueOnce.Do(func() {
		if cfg.Redis.Enabled {
			queue, err := NewAsyncQueue(&cfg.Redis)
			if err != nil {
				logger.Warnf("[TaskQueue] Redis unavailable, falling back to local mode: %v", err)
				globalTaskQueue = NewLocalQueue()
			} else {
				logger.Infof("[TaskQueue] Async queue initialized with Redis at %s", cfg.Redis.Addr)
				globalTaskQueue = queue
			}
		} else {
			logger.Infof("[TaskQueue] Local queue initialized (Redis disabled)")
			globalTaskQueue = NewLocalQueue()
		}
	})
	return globalTaskQueue
}

// GetTaskQueue returns the global task queue instance.
func GetTaskQueue() TaskQueue {
	return globalTaskQueue
}

// AsyncQueue implements TaskQueue on asynq (Redis-backed).
type AsyncQueue struct {
	client *asynq.Client
}

func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection up front so a dead Redis triggers the fallback.
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

func (q *AsyncQueue) Enqueue(task *IngestTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	t := asynq.NewTask(TaskTypeIngest, payload)
	info, err := q.client.Enqueue(t,
		asynq.Queue("default"),
		asynq.MaxRetry(0), // re-running a half-applied ingestion would double progress writes
	)
	if err != nil {
		return err
	}

	logger.Infof("[AsyncQueue] Task enqueued: id=%s, job=%s", info.ID, task.JobID)
	return nil
}

func (q *AsyncQueue) IsAsync() bool {
	return true
}

func (q *AsyncQueue) Close() error {
	return q.client.Close()
}

// LocalQueue implements TaskQueue without Redis: each task runs in its own
// goroutine so the upload response never waits for processing.
type LocalQueue struct {
	processor func(context.Context, *IngestTask) error
}

func NewLocalQueue() *LocalQueue {
	return &LocalQueue{}
}

// SetProcessor sets the function that handles dispatched tasks.
func (q *LocalQueue) SetProcessor(processor func(context.Context, *IngestTask) error) {
	q.processor = processor
}

func (q *LocalQueue) Enqueue(task *IngestTask) error {
	if q.processor == nil {
		logger.Warnf("[LocalQueue] no processor set, task for job %s dropped", task.JobID)
		return nil
	}

	go func() {
		if err := q.processor(context.Background(), task); err != nil {
			logger.Warnf("[LocalQueue] task for job %s failed: %v", task.JobID, err)
		}
	}()

	return nil
}

func (q *LocalQueue) IsAsync() bool {
	return false
}

func (q *LocalQueue) Close() error {
	return nil
}
