package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"apertiumsrt/internal/logging"
	"apertiumsrt/internal/services"
)

// DefaultWatchDebounce coalesces the Create and Write events of one upload.
const DefaultWatchDebounce = 500 * time.Millisecond

// WatchHandler receives the outcome of every conversion started by Watch.
type WatchHandler func(input string, result Result, err error)

// WithWatchDebounce overrides the quiet period before a new file is converted.
func (s *Service) WithWatchDebounce(d time.Duration) {
	if d > 0 {
		s.watchDebounce = d
	}
}

// Watch converts every .srt file created or rewritten in dir until ctx is
// cancelled. tmpl supplies the pair, codec, format and cleanup policy; its
// Input and Outfile must be empty. Files written by earlier conversions are
// ignored. Conversions run one at a time.
func (s *Service) Watch(ctx context.Context, dir string, tmpl Request, handle WatchHandler) error {
	if tmpl.Input != "" || tmpl.Outfile != "" {
		return services.Wrap(services.ErrValidation, "watch", "", "input and outfile are chosen per file", nil)
	}
	abs, err := filepath.Abs(strings.TrimSpace(dir))
	if err != nil {
		return services.Wrap(services.ErrInvalidInput, "watch", "abs", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return services.Wrap(services.ErrInvalidInput, "watch", "", fmt.Sprintf("not a directory: %s", abs), err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(abs); err != nil {
		return fmt.Errorf("watch %s: %w", abs, err)
	}

	debounce := s.watchDebounce
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	fw := &fileWatcher{
		svc:      s,
		tmpl:     tmpl,
		handle:   handle,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
		produced: make(map[string]struct{}),
	}
	logger := logging.WithContext(services.WithStage(ctx, "watch"), s.logger)
	logger.Info("watching directory", logging.String("dir", abs), logging.Duration("debounce", debounce))

	defer fw.stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped", logging.Int("converted", fw.converted()))
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".srt") {
				continue
			}
			fw.schedule(ctx, event.Name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.WarnWithContext(logger, "watcher error", "watch_error",
				logging.Error(err),
				logging.String(logging.FieldImpact, "some file events may have been missed"),
			)
		}
	}
}

type fileWatcher struct {
	svc      *Service
	tmpl     Request
	handle   WatchHandler
	debounce time.Duration

	mu       sync.Mutex
	timers   map[string]*time.Timer
	produced map[string]struct{}
	count    int
	stopped  bool

	run sync.Mutex
	wg  sync.WaitGroup
}

func (fw *fileWatcher) schedule(ctx context.Context, path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.stopped {
		return
	}
	if _, ok := fw.produced[path]; ok {
		return
	}
	if t, ok := fw.timers[path]; ok && t.Stop() {
		t.Reset(fw.debounce)
		return
	}
	fw.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(fw.debounce, func() {
		defer fw.wg.Done()
		fw.mu.Lock()
		if fw.timers[path] == timer {
			delete(fw.timers, path)
		}
		stopped := fw.stopped
		fw.mu.Unlock()
		if stopped || ctx.Err() != nil {
			return
		}
		fw.process(ctx, path)
	})
	fw.timers[path] = timer
}

func (fw *fileWatcher) process(ctx context.Context, path string) {
	fw.run.Lock()
	defer fw.run.Unlock()

	if fw.isProduced(path) {
		return
	}
	req := fw.tmpl
	req.Input = path
	result, err := fw.svc.Run(ctx, req)

	fw.mu.Lock()
	if result.OutputPath != "" {
		fw.produced[result.OutputPath] = struct{}{}
	}
	if err == nil {
		fw.count++
	}
	fw.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		logging.ErrorWithContext(logging.WithContext(ctx, fw.svc.logger), "watched conversion failed", services.EventType(err),
			logging.String("input", path),
			logging.Error(err),
		)
	}
	if fw.handle != nil {
		fw.handle(path, result, err)
	}
}

func (fw *fileWatcher) isProduced(path string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	_, ok := fw.produced[path]
	return ok
}

func (fw *fileWatcher) converted() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.count
}

// stop cancels pending timers and waits for a running conversion to finish.
func (fw *fileWatcher) stop() {
	fw.mu.Lock()
	fw.stopped = true
	for path, t := range fw.timers {
		if t.Stop() {
			fw.wg.Done()
		}
		delete(fw.timers, path)
	}
	fw.mu.Unlock()
	fw.wg.Wait()
}
