package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"cardgallery/internal/cards"
	"cardgallery/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// startList cancels any in-flight list request and issues a new one. The
// returned command resolves to a cardsLoadedMsg tagged with the new sequence
// number so late responses from superseded requests can be dropped.
func (m *Model) startList(op cards.Op, query string) tea.Cmd {
	if m.listCancel != nil {
		m.listCancel()
	}
	m.listSeq++
	ctx, cancel := context.WithCancel(m.shutdownCtx)
	m.listCancel = cancel
	m.loading = true
	m.err = nil

	logging.UIDebug("list request #%d: op=%s query=%q", m.listSeq, op, query)
	return tea.Batch(m.spinner.Tick, fetchCmd(ctx, m.service, m.listSeq, op, query))
}

func fetchCmd(ctx context.Context, svc CardService, seq uint64, op cards.Op, query string) tea.Cmd {
	return func() tea.Msg {
		var (
			list []cards.Card
			err  error
		)
		if op == cards.OpSearch {
			list, err = svc.Search(ctx, query)
		} else {
			list, err = svc.FetchAll(ctx)
		}
		return cardsLoadedMsg{seq: seq, op: op, query: query, cards: list, err: err}
	}
}

// startUpload sends the selected file. The caller has already checked that
// a file is selected and no upload is running.
func (m *Model) startUpload() tea.Cmd {
	if m.uploadCancel != nil {
		m.uploadCancel()
	}
	m.uploadSeq++
	ctx, cancel := context.WithCancel(m.shutdownCtx)
	m.uploadCancel = cancel
	m.isUploading = true

	logging.Upload("upload #%d: %s", m.uploadSeq, m.selectedFilePath)
	return tea.Batch(m.spinner.Tick, uploadCmd(ctx, m.service, m.openFile, m.uploadSeq, m.selectedFilePath, m.selectedFileName))
}

func uploadCmd(ctx context.Context, svc CardService, open func(string) (io.ReadCloser, error), seq uint64, path, name string) tea.Cmd {
	return func() tea.Msg {
		if name == "" {
			name = filepath.Base(path)
		}
		f, err := open(path)
		if err != nil {
			return uploadDoneMsg{seq: seq, filename: name, err: fmt.Errorf("failed to open %s: %w", path, err)}
		}
		defer f.Close()

		_, err = svc.Upload(ctx, name, f)
		return uploadDoneMsg{seq: seq, filename: name, err: err}
	}
}

// cancelled reports whether err is the result of a superseded or shut down
// request rather than a real failure.
func cancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
