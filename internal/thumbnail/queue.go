// Package thumbnail асинхронно строит уменьшенные копии изображений.
package thumbnail

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	ErrQueueFull   = errors.New("thumbnail: queue is full")
	ErrQueueClosed = errors.New("thumbnail: queue is closed")
)

// Job задание на генерацию миниатюр для одного файла.
type Job struct {
	OwnerID int64  `json:"userId"`
	FileID  string `json:"fileId"`
}

// Queue сторона производителя. Enqueue не ждёт выполнения задания.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
}

// Handler обрабатывает одно задание.
type Handler func(ctx context.Context, job Job) error

// ChannelQueue очередь в памяти процесса с пулом обработчиков.
// Переполненный буфер не блокирует отправителя: задание отклоняется.
type ChannelQueue struct {
	jobs   chan Job
	logger *zap.SugaredLogger

	mu     sync.RWMutex
	closed bool

	rejected atomic.Uint64
	wg       sync.WaitGroup
}

var _ Queue = (*ChannelQueue)(nil)

// NewChannelQueue создаёт очередь с буфером size.
func NewChannelQueue(size int, logger *zap.SugaredLogger) *ChannelQueue {
	if size < 1 {
		size = 1
	}
	return &ChannelQueue{jobs: make(chan Job, size), logger: logger}
}

// Enqueue ставит задание в очередь или сразу возвращает ошибку.
func (q *ChannelQueue) Enqueue(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		q.rejected.Add(1)
		return err
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.rejected.Add(1)
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		q.rejected.Add(1)
		return ErrQueueFull
	}
}

// Start запускает workers обработчиков. Ошибки обработки логируются, повторов нет.
func (q *ChannelQueue) Start(ctx context.Context, workers int, h Handler) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go func(worker int) {
			defer q.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-q.jobs:
					if !ok {
						return
					}
					if err := h(ctx, job); err != nil {
						q.logger.Errorw("thumbnail job failed",
							"worker", worker,
							"user_id", job.OwnerID,
							"file_id", job.FileID,
							"error", err,
						)
					}
				}
			}
		}(i)
	}
}

// Close закрывает приём заданий и ждёт, пока обработчики разберут остаток.
func (q *ChannelQueue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.wg.Wait()
}

// Rejected число отклонённых заданий с момента старта.
func (q *ChannelQueue) Rejected() uint64 {
	return q.rejected.Load()
}
