package gallery

import (
	"fmt"
	"strings"

	"cardgallery/cmd/cards/ui"
	"cardgallery/internal/cards"

	"github.com/charmbracelet/lipgloss"
)

// View renders the active screen.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var screen string
	switch m.mode {
	case DetailView:
		screen = m.renderDetail()
	case UploadModal:
		screen = m.renderModal()
	default:
		screen = m.renderGallery()
	}

	if m.notice != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderNotice())
	}
	return screen
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("Business Cards")
	action := m.styles.Muted.Render("[a] Add Card")
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(action) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + action
}

func (m Model) renderSearchBar() string {
	var parts []string
	if m.isSearching {
		parts = append(parts, m.styles.PageButton.Render("‹ Back"))
	}
	parts = append(parts, m.search.View())

	switch {
	case m.loading:
		parts = append(parts, m.spinner.View())
	case m.focus == FocusSearch:
		parts = append(parts, m.styles.PageCurrent.Render("Search"))
	default:
		parts = append(parts, m.styles.PageButton.Render("Search"))
	}
	return m.styles.Content.Render(strings.Join(parts, " "))
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return m.styles.Content.Render(m.styles.Error.Render("⚠ " + m.err.Error()))
	}
	if m.loading || len(m.cards) == 0 {
		return ""
	}

	p := m.pager()
	page := m.visibleCards()
	first := (p.Page-1)*m.cfg.PageSize + 1
	status := fmt.Sprintf("Showing %d-%d of %d", first, first+len(page)-1, len(m.cards))
	if m.isSearching {
		status += fmt.Sprintf(" results for %q", m.search.Value())
	}
	if p.Visible() {
		status += " · " + pageLabel(p)
	}
	return m.styles.Content.Render(m.styles.Muted.Render(status))
}

func (m Model) renderMain() string {
	if m.loading {
		return m.styles.Content.Render(m.spinner.View() + " " + m.styles.Muted.Render("Loading cards..."))
	}
	if len(m.cards) == 0 {
		return m.styles.Content.Render(m.styles.Muted.Render(msgNoCards))
	}
	return m.styles.Content.Render(m.body.View())
}

func (m Model) renderGallery() string {
	sections := []string{
		m.renderHeader(),
		m.renderSearchBar(),
		m.styles.RenderDivider(m.width),
		m.renderStatus(),
		m.renderMain(),
	}
	if !m.loading {
		if pager := ui.RenderPager(m.styles, m.pager()); pager != "" {
			sections = append(sections, m.styles.Content.Render(pager))
		}
	}
	sections = append(sections,
		m.styles.RenderDivider(m.width),
		m.styles.Footer.Render(m.help.View(m.keys)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderDetail() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.styles.RenderDivider(m.width),
		m.detail.View(),
		m.styles.Footer.Render("esc back • ↑/↓ scroll • q quit"),
	)
}

func (m Model) renderModal() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Upload Visiting Card"))
	sb.WriteString("\n\n")

	if m.selectedFileName != "" {
		sb.WriteString(m.styles.Bold.Render("Selected: ") + m.styles.Body.Render(m.selectedFileName))
	} else {
		sb.WriteString(m.styles.Muted.Render(msgPickerEmptyTip))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.picker.View())
	sb.WriteString("\n\n")

	if m.isUploading {
		sb.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Uploading..."))
	} else {
		upload := m.styles.PageDisabled.Render("[u] Upload")
		if m.selectedFilePath != "" {
			upload = m.styles.PageCurrent.Render("[u] Upload")
		}
		sb.WriteString(upload + "  " + m.styles.PageButton.Render("[esc] Cancel"))
	}

	width := m.width * 2 / 3
	if width < 40 {
		width = 40
	}
	box := m.styles.Modal.Width(width).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderNotice() string {
	style := m.styles.Body
	switch m.notice.kind {
	case noticeSuccess:
		style = m.styles.Success
	case noticeError:
		style = m.styles.Error
	}
	body := style.Render(m.notice.text) + "\n\n" + m.styles.Muted.Render("press any key")
	return m.styles.Notice.Render(body)
}

func pageLabel(p cards.Pager) string {
	if p.Total == 0 {
		return "page 0 of 0"
	}
	return fmt.Sprintf("page %d of %d", p.Page, p.Total)
}
