package gallery

import (
	"strings"

	"cardgallery/internal/cards"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes key presses to the active screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.Shutdown()
		return m, tea.Quit
	}

	// An open notice swallows the next key.
	if m.notice != nil {
		m.notice = nil
		return m, nil
	}

	switch m.mode {
	case UploadModal:
		return m.handleModalKey(msg)
	case DetailView:
		return m.handleDetailKey(msg)
	}

	if m.focus == FocusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submitSearch()
	case tea.KeyEsc:
		m.blurSearch()
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.blurSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		m.syncBody()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Back):
		if !m.isSearching {
			return m, nil
		}
		return m.back()

	case key.Matches(msg, m.keys.Prev):
		if p := m.pager(); p.HasPrev() {
			m.setPage(p.Prev())
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if p := m.pager(); p.HasNext() {
			m.setPage(p.Next())
		}
		return m, nil

	case key.Matches(msg, m.keys.PageJump):
		n := int(msg.Runes[0] - '0')
		if p := m.pager(); p.Visible() && n <= p.Total {
			m.setPage(n)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.openDetail()

	case key.Matches(msg, m.keys.Add):
		return m.openModal()

	case key.Matches(msg, m.keys.Refresh):
		if m.isSearching {
			return m, m.startList(cards.OpSearch, m.search.Value())
		}
		return m, m.startList(cards.OpFetchAll, "")

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// submitSearch issues a search for the current input. A blank query makes
// no request, and so does a submit while a list request is in flight.
func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	query := m.search.Value()
	if strings.TrimSpace(query) == "" || m.loading {
		return m, nil
	}
	m.isSearching = true
	m.blurSearch()
	return m, m.startList(cards.OpSearch, query)
}

// back clears the search and returns to the full list.
func (m Model) back() (tea.Model, tea.Cmd) {
	m.search.SetValue("")
	m.isSearching = false
	return m, m.startList(cards.OpFetchAll, "")
}

func (m *Model) blurSearch() {
	m.search.Blur()
	m.focus = FocusGrid
	m.syncBody()
}

// moveCursor steps through the tiles on the current page without wrapping.
func (m *Model) moveCursor(delta int) {
	n := len(m.visibleCards())
	if n == 0 {
		return
	}
	m.cursor += delta
	m.clampCursor()
	m.syncBody()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "enter", "backspace":
		m.mode = GalleryView
		return m, nil
	case "q":
		m.Shutdown()
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}
