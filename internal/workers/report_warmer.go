package workers

import (
	"context"
	"sync"
	"time"

	"call-insights/internal/models"
	"call-insights/internal/services"
)

// ReportSource computes reports and lists the clients to warm
type ReportSource interface {
	GetReport(ctx context.Context, q services.ReportQuery) (*models.AnalysisReport, error)
	ListClients(ctx context.Context, window models.DateRange) ([]string, error)
}

// ReportWarmerConfig holds configuration for the report warmer
type ReportWarmerConfig struct {
	WorkerConfig WorkerConfig
	Source       ReportSource
	// Clients to warm; empty means every client with evaluations in the window
	Clients    []string
	WindowDays int
	Logger     Logger
}

// ReportWarmer periodically recomputes trailing-window reports so dashboard requests hit the cache
type ReportWarmer struct {
	*BaseWorker
	source     ReportSource
	clients    []string
	windowDays int
	logger     Logger
	now        func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	lifeMu sync.Mutex
}

// NewReportWarmer creates a new report warmer
func NewReportWarmer(config ReportWarmerConfig) *ReportWarmer {
	if config.WorkerConfig.Concurrency < 1 {
		config.WorkerConfig.Concurrency = 1
	}
	if config.WorkerConfig.Interval <= 0 {
		config.WorkerConfig.Interval = DefaultWorkerConfig("").Interval
	}
	if config.WindowDays < 1 {
		config.WindowDays = 7
	}
	return &ReportWarmer{
		BaseWorker: NewBaseWorker(config.WorkerConfig),
		source:     config.Source,
		clients:    config.Clients,
		windowDays: config.WindowDays,
		logger:     config.Logger,
		now:        time.Now,
	}
}

// Start runs the warmer immediately and then once per interval until Stop or ctx is done
func (w *ReportWarmer) Start(ctx context.Context) error {
	w.lifeMu.Lock()
	defer w.lifeMu.Unlock()

	if w.IsRunning() {
		return NewWorkerError(w.Name(), "start", nil, "worker already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.setRunning(true)
	w.logger.Info("Starting report warmer: %s (every %v, %d-day window)", w.Name(), w.config.Interval, w.windowDays)

	go w.loop(runCtx, w.done)
	return nil
}

// Stop cancels the loop and waits for an in-flight run up to the shutdown timeout
func (w *ReportWarmer) Stop(ctx context.Context) error {
	w.lifeMu.Lock()
	defer w.lifeMu.Unlock()

	if !w.IsRunning() {
		return nil
	}

	w.logger.Info("Stopping report warmer: %s", w.Name())
	w.cancel()

	timeout := w.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultWorkerConfig("").ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	select {
	case <-w.done:
	case <-shutdownCtx.Done():
		err = NewWorkerError(w.Name(), "stop", shutdownCtx.Err(), "")
	}

	w.setRunning(false)
	w.logger.Info("Report warmer stopped: %s", w.Name())
	return err
}

func (w *ReportWarmer) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		w.RunOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunOnce warms the trailing window for every target client plus the all-clients aggregate.
// It returns the number of reports that failed.
func (w *ReportWarmer) RunOnce(ctx context.Context) int {
	startTime := time.Now()

	if w.config.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.config.RunTimeout)
		defer cancel()
	}

	window := models.TrailingWindow(w.now(), w.windowDays)

	targets, err := w.targets(ctx, window)
	if err != nil {
		w.logger.Error("Failed to list clients for warming: %v", err)
		w.recordRun(startTime, 0, 1, err)
		return 1
	}

	task := Task(func(ctx context.Context, clientID string) error {
		_, err := w.source.GetReport(ctx, services.ReportQuery{ClientID: clientID, Window: window})
		return err
	})
	if w.config.EnableRecovery {
		task = RecoverableTask(task)
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		succeeded int
		failed    int
		lastErr   error
	)
	sem := make(chan struct{}, w.config.Concurrency)

	for _, clientID := range targets {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(clientID string) {
			defer wg.Done()
			defer func() { <-sem }()

			err := task(ctx, clientID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				lastErr = err
				w.logger.Warn("Failed to warm report for client %q: %v", clientID, err)
				return
			}
			succeeded++
		}(clientID)
	}
	wg.Wait()

	w.recordRun(startTime, succeeded, failed, lastErr)
	w.logger.Info("Warmed %d/%d reports in %v", succeeded, len(targets), time.Since(startTime))
	return failed
}

// targets returns the aggregate ("") followed by each client
func (w *ReportWarmer) targets(ctx context.Context, window models.DateRange) ([]string, error) {
	clients := w.clients
	if len(clients) == 0 {
		listed, err := w.source.ListClients(ctx, window)
		if err != nil {
			return nil, err
		}
		clients = listed
	}

	targets := make([]string, 0, len(clients)+1)
	targets = append(targets, "")
	for _, c := range clients {
		if c != "" {
			targets = append(targets, c)
		}
	}
	return targets, nil
}
