package predictor

import (
	"log/slog"
	"sync"
	"time"
)

// Outcome is the terminal result of a load: a ready pipeline or an error.
// Exactly one outcome is delivered per Loader.
type Outcome struct {
	Pipeline *Pipeline
	Err      error
}

// Loader performs the one-time asynchronous pipeline construction. Progress
// milestones (10, 30, 80, 100) are delivered in order on the progress channel,
// which is closed once loading ends; consumers drain it and then read the
// single outcome. A Loader is neither restartable nor cancellable.
type Loader struct {
	build    func() (*Pipeline, error)
	warmup   time.Duration
	logger   *slog.Logger
	progress chan int
	done     chan Outcome
	once     sync.Once
}

// NewLoader prepares a loader for the given configuration. Nothing happens
// until Start is called.
func NewLoader(cfg Config, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := newLoaderWithBuild(func() (*Pipeline, error) {
		return NewPipeline(cfg, logger)
	}, cfg.WarmupDelay(), logger)
	return l
}

func newLoaderWithBuild(build func() (*Pipeline, error), warmup time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		build: build,
		// Four milestones at most; the channel never blocks the worker.
		progress: make(chan int, 4),
		done:     make(chan Outcome, 1),
		warmup:   warmup,
		logger:   logger,
	}
}

// Progress returns the milestone channel. It is closed once loading ends.
func (l *Loader) Progress() <-chan int { return l.progress }

// Outcome returns the terminal-result channel. Exactly one value is sent.
func (l *Loader) Outcome() <-chan Outcome { return l.done }

// Start launches the background load. Subsequent calls are no-ops.
func (l *Loader) Start() {
	l.once.Do(func() {
		go l.run()
	})
}

func (l *Loader) run() {
	defer close(l.progress)
	start := time.Now()

	l.progress <- 10
	time.Sleep(l.warmup)
	l.progress <- 30

	pipeline, err := l.build()
	if err != nil {
		l.logger.Error("model load failed", "error", err)
		l.done <- Outcome{Err: err}
		return
	}

	l.progress <- 80
	time.Sleep(l.warmup)
	l.progress <- 100

	l.logger.Info("model loaded", "elapsed", time.Since(start).Round(time.Millisecond))
	l.done <- Outcome{Pipeline: pipeline}
}
