package gallery

import (
	"cardgallery/cmd/cards/ui"
	"cardgallery/internal/cards"
	"cardgallery/internal/logging"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case cardsLoadedMsg:
		return m.handleCardsLoaded(msg)

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case spinner.TickMsg:
		if !m.loading && !m.isUploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Directory listings and cursor blinks.
	var cmd tea.Cmd
	switch {
	case m.mode == UploadModal:
		m.picker, cmd = m.picker.Update(msg)
	case m.focus == FocusSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m Model) handleCardsLoaded(msg cardsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.listSeq {
		logging.UIDebug("dropping stale list response #%d (latest #%d)", msg.seq, m.listSeq)
		return m, nil
	}
	m.loading = false
	m.listCancel = nil

	if msg.err != nil {
		if cancelled(msg.err) {
			return m, nil
		}
		// The previous list stays on screen under the error banner.
		m.err = msg.err
		logging.UIError("%s failed: %v", msg.op, msg.err)
		return m, nil
	}

	m.cards = msg.cards
	if m.cards == nil {
		m.cards = []cards.Card{}
	}
	m.clampCursor()
	logging.UI("%s returned %d cards", msg.op, len(m.cards))
	m.syncBody()
	return m, nil
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.uploadSeq {
		return m, nil
	}
	m.isUploading = false
	m.uploadCancel = nil

	if msg.err != nil {
		if cancelled(msg.err) {
			return m, nil
		}
		logging.UploadError("upload %s failed: %v", msg.filename, msg.err)
		m.notice = &notice{text: msgUploadFailed, kind: noticeError}
		return m, nil
	}

	logging.Upload("uploaded %s", msg.filename)
	m.notice = &notice{text: msgUploadSuccess, kind: noticeSuccess}
	m.closeModal()
	return m, m.startList(cards.OpFetchAll, "")
}

// layout sizes the scrollable regions after a resize.
func (m *Model) layout() {
	contentWidth := m.contentWidth()
	m.search.Width = contentWidth - 20
	if m.search.Width < 10 {
		m.search.Width = 10
	}
	m.help.Width = m.width

	bodyHeight := m.height - chromeHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.body.Width = contentWidth
	m.body.Height = bodyHeight
	m.detail.Width = contentWidth
	m.detail.Height = m.height - 4
	if m.detail.Height < 3 {
		m.detail.Height = 3
	}
	m.picker.Height = m.pickerHeight()

	m.syncBody()
	if m.mode == DetailView {
		m.refreshDetail()
	}
}

// chromeHeight is the number of lines around the card grid: header, search
// bar, divider, pager and footer.
const chromeHeight = 9

func (m Model) contentWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) pickerHeight() int {
	h := m.height - 14
	if h < 3 {
		h = 3
	}
	if h > 15 {
		h = 15
	}
	return h
}

func (m Model) gridOptions() ui.GridOptions {
	cursor := -1
	if m.focus == FocusGrid {
		cursor = m.cursor
	}
	return ui.GridOptions{
		Width:          m.contentWidth(),
		MinColumnWidth: m.cfg.MinColumnWidth,
		Cursor:         cursor,
		ShowImageURL:   m.cfg.ShowImageURL,
	}
}

// syncBody re-renders the visible page into the body viewport and scrolls so
// the selected tile's row is on screen.
func (m *Model) syncBody() {
	opts := m.gridOptions()
	rows := ui.RenderGridRows(m.styles, m.visibleCards(), opts)
	if len(rows) == 0 {
		m.body.SetContent("")
		m.body.GotoTop()
		return
	}
	m.body.SetContent(lipgloss.JoinVertical(lipgloss.Left, rows...))

	cols := ui.Columns(opts.Width, opts.MinColumnWidth)
	row := m.cursor / cols
	if row >= len(rows) {
		row = len(rows) - 1
	}
	top := 0
	for i := 0; i < row; i++ {
		top += lipgloss.Height(rows[i])
	}
	bottom := top + lipgloss.Height(rows[row])

	switch {
	case top < m.body.YOffset:
		m.body.SetYOffset(top)
	case bottom > m.body.YOffset+m.body.Height:
		m.body.SetYOffset(bottom - m.body.Height)
	}
}

// clampCursor keeps the cursor inside the visible page.
func (m *Model) clampCursor() {
	n := len(m.visibleCards())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// setPage moves to page p and resets the cursor to the first tile.
func (m *Model) setPage(p int) {
	m.currentPage = p
	m.cursor = 0
	m.body.GotoTop()
	m.syncBody()
}
