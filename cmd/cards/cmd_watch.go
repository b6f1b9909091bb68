package main

import (
	"fmt"
	"sync"

	"cardgallery/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchCmd uploads images dropped into a directory
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload new card images as they appear in a directory",
	Long: `Watches a directory and uploads each new image file once, after it
has stopped changing for upload.settle_window. Files present before the
command starts are left alone. Failed uploads are reported and retried the
next time the file is written. Stop with Ctrl+C.

Example:
  cards watch ~/Scans`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	out := cmd.OutOrStdout()
	var mu sync.Mutex

	w, err := watch.New(args[0], newClient(), watch.Options{
		Extensions: cfg.Upload.Extensions,
		RatePerSec: cfg.Upload.RatePerSec,
		Settle:     cfg.GetSettleWindow(),
		OnResult: func(r watch.Result) {
			mu.Lock()
			defer mu.Unlock()
			if r.Err != nil {
				logger.Warn("watch upload failed", zap.String("path", r.Path), zap.Error(r.Err))
				fmt.Fprintf(out, "✗ %s: %v\n", r.Path, r.Err)
				return
			}
			logger.Info("watch upload", zap.String("path", r.Path))
			fmt.Fprintf(out, "✓ %s\n", r.Path)
		},
	})
	if err != nil {
		return err
	}

	logger.Info("watching directory", zap.String("dir", args[0]))
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", args[0])
	return w.Run(ctx)
}
