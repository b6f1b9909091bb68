package ui

import (
	"fmt"
	"strings"

	"cardgallery/internal/cards"

	"github.com/charmbracelet/lipgloss"
)

// Contact line glyphs.
var linkIcons = map[cards.LinkKind]string{
	cards.LinkEmail:   "✉",
	cards.LinkPhone:   "☎",
	cards.LinkWebsite: "↗",
	cards.LinkAddress: "⌂",
}

// TileOptions controls tile rendering.
type TileOptions struct {
	Width        int
	Selected     bool
	ShowImageURL bool
}

// RenderTile renders one card. Width is the outer width including border.
func RenderTile(s Styles, c cards.Card, opts TileOptions) string {
	style := s.Tile
	if opts.Selected {
		style = s.TileSelected
	}
	inner := opts.Width - style.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	var lines []string
	if opts.ShowImageURL && c.ImageURL != "" {
		lines = append(lines, s.TileImage.Render(truncate("▣ "+c.ImageURL, inner)))
	}
	lines = append(lines,
		s.TileName.Render(truncate(c.Name, inner)),
		s.TileDesignation.Render(truncate(c.Designation, inner)),
		s.TileCompany.Render(truncate(c.Company, inner)),
	)

	if links := cards.Contacts(c); len(links) > 0 {
		lines = append(lines, "")
		for _, l := range links {
			lines = append(lines, s.TileLink.Render(truncate(linkIcons[l.Kind]+" "+l.Label, inner)))
		}
	}

	return style.Width(inner + style.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// Columns returns how many tiles fit side by side: 1, 2 or 3, mirroring the
// one/two/three column breakpoints of the web grid.
func Columns(width, minColumnWidth int) int {
	if minColumnWidth <= 0 {
		minColumnWidth = 38
	}
	switch {
	case width >= 3*minColumnWidth+4:
		return 3
	case width >= 2*minColumnWidth+2:
		return 2
	default:
		return 1
	}
}

// GridOptions controls grid rendering.
type GridOptions struct {
	Width          int
	MinColumnWidth int
	Cursor         int // index into the page, -1 for none
	ShowImageURL   bool
}

// RenderGrid lays the page out in rows of equal-width tiles.
func RenderGrid(s Styles, page []cards.Card, opts GridOptions) string {
	rows := RenderGridRows(s, page, opts)
	if len(rows) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderGridRows renders each grid row separately so callers can work out
// line offsets for scrolling.
func RenderGridRows(s Styles, page []cards.Card, opts GridOptions) []string {
	if len(page) == 0 {
		return nil
	}
	cols := Columns(opts.Width, opts.MinColumnWidth)
	gap := 2
	tileWidth := (opts.Width - gap*(cols-1)) / cols
	if tileWidth < 20 {
		tileWidth = 20
	}

	var rows []string
	for start := 0; start < len(page); start += cols {
		end := start + cols
		if end > len(page) {
			end = len(page)
		}
		var tiles []string
		for i := start; i < end; i++ {
			if i > start {
				tiles = append(tiles, strings.Repeat(" ", gap))
			}
			tiles = append(tiles, RenderTile(s, page[i], TileOptions{
				Width:        tileWidth,
				Selected:     i == opts.Cursor,
				ShowImageURL: opts.ShowImageURL,
			}))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return rows
}

// RenderPager renders Previous, one button per page, and Next. It returns
// "" when there is at most one page.
func RenderPager(s Styles, p cards.Pager) string {
	if !p.Visible() {
		return ""
	}

	button := func(label string, enabled bool) string {
		if !enabled {
			return s.PageDisabled.Render(label)
		}
		return s.PageButton.Render(label)
	}

	parts := []string{button("‹ Previous", p.HasPrev())}
	for i := 1; i <= p.Total; i++ {
		label := fmt.Sprintf("%d", i)
		if i == p.Page {
			parts = append(parts, s.PageCurrent.Render(label))
		} else {
			parts = append(parts, s.PageButton.Render(label))
		}
	}
	parts = append(parts, button("Next ›", p.HasNext()))
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// truncate shortens s to width cells, ending with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
