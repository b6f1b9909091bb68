package gallery

import (
	"fmt"
	"strings"

	"cardgallery/internal/cards"

	tea "github.com/charmbracelet/bubbletea"
)

// openDetail shows the selected card full screen.
func (m Model) openDetail() (tea.Model, tea.Cmd) {
	if _, ok := m.selectedCard(); !ok {
		return m, nil
	}
	m.mode = DetailView
	m.refreshDetail()
	m.detail.GotoTop()
	return m, nil
}

func (m Model) selectedCard() (cards.Card, bool) {
	page := m.visibleCards()
	if m.cursor < 0 || m.cursor >= len(page) {
		return cards.Card{}, false
	}
	return page[m.cursor], true
}

func (m *Model) refreshDetail() {
	c, ok := m.selectedCard()
	if !ok {
		m.mode = GalleryView
		return
	}
	m.detail.SetContent(m.safeRenderMarkdown(cardMarkdown(c)))
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

var contactLabels = map[cards.LinkKind]string{
	cards.LinkEmail:   "Email",
	cards.LinkPhone:   "Phone",
	cards.LinkWebsite: "Website",
	cards.LinkAddress: "Address",
}

// cardMarkdown renders one card as a markdown document.
func cardMarkdown(c cards.Card) string {
	var sb strings.Builder

	name := c.Name
	if name == "" {
		name = "Unnamed card"
	}
	sb.WriteString("# " + name + "\n\n")

	switch {
	case c.Designation != "" && c.Company != "":
		sb.WriteString(fmt.Sprintf("**%s** at %s\n\n", c.Designation, c.Company))
	case c.Designation != "":
		sb.WriteString(fmt.Sprintf("**%s**\n\n", c.Designation))
	case c.Company != "":
		sb.WriteString(c.Company + "\n\n")
	}

	if links := cards.Contacts(c); len(links) > 0 {
		sb.WriteString("## Contact\n\n")
		for _, l := range links {
			label := contactLabels[l.Kind]
			if l.Href != "" {
				sb.WriteString(fmt.Sprintf("- **%s:** [%s](%s)\n", label, l.Label, l.Href))
			} else {
				sb.WriteString(fmt.Sprintf("- **%s:** %s\n", label, l.Label))
			}
		}
		sb.WriteString("\n")
	}

	if c.ImageURL != "" {
		sb.WriteString("## Card image\n\n")
		sb.WriteString(c.ImageURL + "\n\n")
	}

	if c.CreatedAt != "" || c.UpdatedAt != "" {
		sb.WriteString("---\n\n")
		if c.CreatedAt != "" {
			sb.WriteString("Added " + c.CreatedAt + "  \n")
		}
		if c.UpdatedAt != "" {
			sb.WriteString("Updated " + c.UpdatedAt + "\n")
		}
	}
	return sb.String()
}
