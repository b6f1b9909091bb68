package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"cardgallery/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// uploadCmd uploads card images
var uploadCmd = &cobra.Command{
	Use:   "upload [file...]",
	Short: "Upload one or more card images",
	Long: `Uploads each file to the webhook service as a new visiting card.

Uploads run with bounded concurrency (upload.concurrency) and are paced by
upload.rate_per_sec. A failed file does not stop the others; the command
exits non-zero if any upload failed.

Example:
  cards upload scans/*.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

// fileUploader is the part of the webhook client batch uploads use.
type fileUploader interface {
	UploadFile(ctx context.Context, path string) ([]byte, error)
}

// batchOptions controls uploadFiles.
type batchOptions struct {
	Concurrency int
	RatePerSec  float64
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	failed, err := uploadFiles(ctx, newClient(), args, batchOptions{
		Concurrency: cfg.Upload.Concurrency,
		RatePerSec:  cfg.Upload.RatePerSec,
	}, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d uploads failed", failed, len(args))
	}
	return nil
}

// uploadFiles uploads every path and reports one line per file to out. It
// returns the number of failed uploads; the error is non-nil only when ctx
// ends before all files were attempted.
func uploadFiles(ctx context.Context, up fileUploader, paths []string, opts batchOptions, out io.Writer) (int, error) {
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	limiter := rate.NewLimiter(limit, 1)

	eg, egCtx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		eg.SetLimit(opts.Concurrency)
	}

	var (
		mu     sync.Mutex
		failed int
	)
	report := func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failed++
			fmt.Fprintf(out, "✗ %s: %v\n", path, err)
			return
		}
		fmt.Fprintf(out, "✓ %s\n", path)
	}

	for _, path := range paths {
		path := path
		eg.Go(func() error {
			if err := limiter.Wait(egCtx); err != nil {
				return err
			}
			timer := logging.StartTimer(logging.CategoryUpload, "upload "+path)
			_, err := up.UploadFile(egCtx, path)
			timer.Stop()
			if err != nil {
				logging.UploadError("upload %s failed: %v", path, err)
				logger.Warn("upload failed", zap.String("path", path), zap.Error(err), zap.String("detail", detail(err)))
			} else {
				logger.Info("uploaded", zap.String("path", path))
			}
			report(path, err)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return failed, fmt.Errorf("upload interrupted: %w", err)
	}
	return failed, nil
}
