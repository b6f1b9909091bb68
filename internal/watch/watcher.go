// Package watch uploads card images dropped into a directory.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cardgallery/internal/logging"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Uploader sends one file to the webhook service.
type Uploader interface {
	UploadFile(ctx context.Context, path string) ([]byte, error)
}

// Result reports the outcome of one upload.
type Result struct {
	Path string
	Err  error
}

// Options configures a Watcher.
type Options struct {
	// Extensions accepted, lower case with leading dot. Empty accepts
	// every file.
	Extensions []string
	// RatePerSec paces uploads. Zero or negative means unpaced.
	RatePerSec float64
	// Settle is how long a file must stay quiet before it is uploaded.
	Settle time.Duration
	// OnResult, when set, is called after each upload attempt from the
	// upload goroutine.
	OnResult func(Result)
}

// Watcher uploads each new image file in a directory once.
type Watcher struct {
	dir      string
	uploader Uploader
	opts     Options
	limiter  *rate.Limiter
	settle   *debouncer

	mu       sync.Mutex
	uploaded map[string]bool
}

// New creates a watcher for dir. The directory must exist.
func New(dir string, uploader Uploader, opts Options) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	if uploader == nil {
		return nil, errors.New("uploader required")
	}

	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	return &Watcher{
		dir:      dir,
		uploader: uploader,
		opts:     opts,
		limiter:  rate.NewLimiter(limit, 1),
		settle:   newDebouncer(opts.Settle),
		uploaded: make(map[string]bool),
	}, nil
}

// Accepts reports whether name has one of the configured extensions.
func (w *Watcher) Accepts(name string) bool {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	if len(w.opts.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range w.opts.Extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Run watches until ctx is cancelled. Files already present when Run starts
// are not uploaded.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fs watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	logging.Watch("watching %s", w.dir)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan string, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.uploadLoop(ctx, queue)
	}()
	defer func() {
		w.settle.CancelAll()
		cancel()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, ev, queue)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.WatchError("fs watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event, queue chan<- string) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	if !w.Accepts(ev.Name) {
		logging.WatchDebug("ignoring %s", ev.Name)
		return
	}
	if w.isUploaded(ev.Name) {
		return
	}

	path := ev.Name
	w.settle.Debounce(path, func() {
		select {
		case queue <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) uploadLoop(ctx context.Context, queue <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-queue:
			if w.isUploaded(path) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			_, err := w.uploader.UploadFile(ctx, path)
			if err != nil {
				logging.WatchError("upload %s failed: %v", path, err)
			} else {
				w.markUploaded(path)
				logging.Watch("uploaded %s", path)
			}
			if w.opts.OnResult != nil {
				w.opts.OnResult(Result{Path: path, Err: err})
			}
		}
	}
}

func (w *Watcher) isUploaded(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.uploaded[path]
}

func (w *Watcher) markUploaded(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.uploaded[path] = true
}
