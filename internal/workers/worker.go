package workers

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Worker defines the interface for background workers
type Worker interface {
	// Start begins the worker's periodic runs
	Start(ctx context.Context) error

	// Stop gracefully shuts down the worker
	Stop(ctx context.Context) error

	// Name returns the worker's name
	Name() string

	// IsRunning returns whether the worker is currently running
	IsRunning() bool

	// Stats returns worker statistics
	Stats() WorkerStats
}

// Logger defines the interface for logging
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

// WorkerStats represents statistics about a worker
type WorkerStats struct {
	WorkerName     string        `json:"worker_name"`
	Runs           int64         `json:"runs"`
	TasksSucceeded int64         `json:"tasks_succeeded"`
	TasksFailed    int64         `json:"tasks_failed"`
	AverageRunTime time.Duration `json:"average_run_time"`
	LastRunTime    time.Time     `json:"last_run_time,omitempty"`
	LastError      string        `json:"last_error,omitempty"`
	Uptime         time.Duration `json:"uptime"`
	IsRunning      bool          `json:"is_running"`
}

// WorkerConfig holds configuration for workers
type WorkerConfig struct {
	// WorkerName is a unique identifier for this worker instance
	WorkerName string

	// Concurrency is the number of tasks processed in parallel within one run
	Concurrency int

	// Interval is the time between runs
	Interval time.Duration

	// RunTimeout bounds a single run
	RunTimeout time.Duration

	// ShutdownTimeout is how long to wait for an in-flight run on Stop
	ShutdownTimeout time.Duration

	// EnableRecovery enables panic recovery
	EnableRecovery bool
}

// DefaultWorkerConfig returns a worker configuration with sensible defaults
func DefaultWorkerConfig(workerName string) WorkerConfig {
	return WorkerConfig{
		WorkerName:      workerName,
		Concurrency:     3,
		Interval:        10 * time.Minute,
		RunTimeout:      2 * time.Minute,
		ShutdownTimeout: 30 * time.Second,
		EnableRecovery:  true,
	}
}

// BaseWorker provides common functionality for workers
type BaseWorker struct {
	config  WorkerConfig
	running bool
	mu      sync.RWMutex

	// Stats tracking
	runs           int64
	tasksSucceeded int64
	tasksFailed    int64
	totalRunTime   time.Duration
	startTime      time.Time
	lastRunTime    time.Time
	lastError      string
	statsMu        sync.RWMutex
}

// NewBaseWorker creates a new base worker
func NewBaseWorker(config WorkerConfig) *BaseWorker {
	return &BaseWorker{
		config: config,
	}
}

// Name returns the worker's name
func (w *BaseWorker) Name() string {
	return w.config.WorkerName
}

// IsRunning returns whether the worker is currently running
func (w *BaseWorker) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// setRunning sets the running state
func (w *BaseWorker) setRunning(running bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = running
	if running {
		w.startTime = time.Now()
	}
}

// Stats returns worker statistics
func (w *BaseWorker) Stats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	var avgRunTime time.Duration
	if w.runs > 0 {
		avgRunTime = w.totalRunTime / time.Duration(w.runs)
	}

	var uptime time.Duration
	if !w.startTime.IsZero() && w.IsRunning() {
		uptime = time.Since(w.startTime)
	}

	return WorkerStats{
		WorkerName:     w.config.WorkerName,
		Runs:           w.runs,
		TasksSucceeded: w.tasksSucceeded,
		TasksFailed:    w.tasksFailed,
		AverageRunTime: avgRunTime,
		LastRunTime:    w.lastRunTime,
		LastError:      w.lastError,
		Uptime:         uptime,
		IsRunning:      w.IsRunning(),
	}
}

// recordRun records a finished run and its task outcomes
func (w *BaseWorker) recordRun(startTime time.Time, succeeded, failed int, lastErr error) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	w.runs++
	w.tasksSucceeded += int64(succeeded)
	w.tasksFailed += int64(failed)
	w.totalRunTime += time.Since(startTime)
	w.lastRunTime = time.Now()
	if lastErr != nil {
		w.lastError = lastErr.Error()
	}
}

// resetStats resets worker statistics
func (w *BaseWorker) resetStats() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	w.runs = 0
	w.tasksSucceeded = 0
	w.tasksFailed = 0
	w.totalRunTime = 0
	w.lastRunTime = time.Time{}
	w.lastError = ""
}

// Config returns the worker configuration
func (w *BaseWorker) Config() WorkerConfig {
	return w.config
}

// WorkerPool manages multiple workers
type WorkerPool struct {
	workers []Worker
	mu      sync.RWMutex
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool() *WorkerPool {
	return &WorkerPool{
		workers: make([]Worker, 0),
	}
}

// AddWorker adds a worker to the pool
func (p *WorkerPool) AddWorker(worker Worker) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.workers = append(p.workers, worker)
}

// StartAll starts all workers in the pool
func (p *WorkerPool) StartAll(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, worker := range p.workers {
		if err := worker.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops all workers in the pool
func (p *WorkerPool) StopAll(ctx context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var wg sync.WaitGroup
	errChan := make(chan error, len(p.workers))

	for _, worker := range p.workers {
		wg.Add(1)
		go func(w Worker) {
			defer wg.Done()
			if err := w.Stop(ctx); err != nil {
				errChan <- err
			}
		}(worker)
	}

	wg.Wait()
	close(errChan)

	// Return first error if any
	select {
	case err := <-errChan:
		return err
	default:
		return nil
	}
}

// GetWorker returns a worker by name
func (p *WorkerPool) GetWorker(name string) Worker {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, worker := range p.workers {
		if worker.Name() == name {
			return worker
		}
	}
	return nil
}

// GetAllStats returns statistics for all workers
func (p *WorkerPool) GetAllStats() []WorkerStats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	stats := make([]WorkerStats, 0, len(p.workers))
	for _, worker := range p.workers {
		stats = append(stats, worker.Stats())
	}
	return stats
}

// Count returns the number of workers in the pool
func (p *WorkerPool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.workers)
}

// Task processes one unit of work within a run, identified by key
type Task func(ctx context.Context, key string) error

// RecoverableTask wraps a task with panic recovery
func RecoverableTask(task Task) Task {
	return func(ctx context.Context, key string) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &WorkerPanicError{
					Key:   key,
					Panic: r,
				}
			}
		}()
		return task(ctx, key)
	}
}

// WorkerError represents a worker-specific error
type WorkerError struct {
	WorkerName string
	Operation  string
	Err        error
	Message    string
}

func (e *WorkerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	prefix := e.WorkerName + ":" + e.Operation
	if e.Err != nil {
		return prefix + ": " + e.Err.Error()
	}
	return prefix + ": unknown error"
}

func (e *WorkerError) Unwrap() error {
	return e.Err
}

// NewWorkerError creates a new worker error
func NewWorkerError(workerName, operation string, err error, message string) *WorkerError {
	return &WorkerError{
		WorkerName: workerName,
		Operation:  operation,
		Err:        err,
		Message:    message,
	}
}

// WorkerPanicError represents a panic that occurred while running a task
type WorkerPanicError struct {
	Key   string
	Panic any
}

func (e *WorkerPanicError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("worker panic (%s): %s", e.Key, formatPanic(e.Panic))
	}
	return "worker panic: " + formatPanic(e.Panic)
}

func formatPanic(p any) string {
	switch v := p.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// StdLogger adapts a *log.Logger-style Printf to the Logger interface
type StdLogger struct {
	Printf func(format string, args ...any)
}

func (l *StdLogger) Info(msg string, args ...any) {
	l.Printf("[INFO] "+msg, args...)
}

func (l *StdLogger) Error(msg string, args ...any) {
	l.Printf("[ERROR] "+msg, args...)
}

func (l *StdLogger) Warn(msg string, args ...any) {
	l.Printf("[WARN] "+msg, args...)
}

func (l *StdLogger) Debug(msg string, args ...any) {
	l.Printf("[DEBUG] "+msg, args...)
}
