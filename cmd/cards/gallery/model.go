// Package gallery implements the interactive business card browser: a
// searchable, paginated grid of cards plus an upload dialog, built on the
// bubbletea Elm architecture.
package gallery

import (
	"context"
	"io"
	"os"
	"sync"

	"cardgallery/cmd/cards/ui"
	"cardgallery/internal/cards"
	"cardgallery/internal/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// New creates the gallery model. The first fetch-all is issued from Init.
func New(service CardService, cfg Config) Model {
	if cfg.PageSize <= 0 {
		cfg.PageSize = cards.DefaultPageSize
	}
	if cfg.MinColumnWidth <= 0 {
		cfg.MinColumnWidth = 38
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	ti := textinput.New()
	ti.Placeholder = msgSearchHint
	ti.Prompt = "⌕ "
	ti.CharLimit = 200
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	glamourStyle := "light"
	if styles.Theme.IsDark {
		glamourStyle = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(glamourStyle),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		logging.UIDebug("glamour renderer unavailable: %v", err)
		renderer = nil
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		search:   ti,
		spinner:  sp,
		detail:   viewport.New(80, 20),
		body:     viewport.New(80, 20),
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   styles,
		renderer: renderer,

		mode:        GalleryView,
		focus:       FocusGrid,
		currentPage: 1,

		service:  service,
		cfg:      cfg,
		openFile: func(path string) (io.ReadCloser, error) { return os.Open(path) },

		shutdownCtx:    ctx,
		shutdownCancel: cancel,
		shutdownOnce:   &sync.Once{},
	}

	// Init has a value receiver and cannot record request state, so the
	// initial fetch-all is registered here.
	m.initCmd = m.startList(cards.OpFetchAll, "")
	return m
}

// Init issues the initial fetch-all.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Shutdown cancels every in-flight request. Safe to call more than once.
func (m *Model) Shutdown() {
	m.shutdownOnce.Do(func() {
		if m.listCancel != nil {
			m.listCancel()
		}
		if m.uploadCancel != nil {
			m.uploadCancel()
		}
		if m.shutdownCancel != nil {
			m.shutdownCancel()
		}
		logging.UIDebug("gallery shut down")
	})
}

// Cards returns the current card list.
func (m Model) Cards() []cards.Card { return m.cards }

// Page returns the clamped current page.
func (m Model) Page() int { return m.pager().Page }

// IsSearching reports whether the list shows search results.
func (m Model) IsSearching() bool { return m.isSearching }

// Loading reports whether a list request is in flight.
func (m Model) Loading() bool { return m.loading }

// Err returns the last list error, if any.
func (m Model) Err() error { return m.err }

// Mode returns the active screen.
func (m Model) Mode() ViewMode { return m.mode }

func (m Model) pager() cards.Pager {
	return cards.NewPager(len(m.cards), m.currentPage, m.cfg.PageSize)
}

// visibleCards returns the slice of cards on the current page.
func (m Model) visibleCards() []cards.Card {
	return cards.PageSlice(m.cards, m.pager().Page, m.cfg.PageSize)
}
