package ui

import (
	"strings"
	"testing"

	"cardgallery/internal/cards"

	"github.com/stretchr/testify/assert"
)

func testStyles() Styles {
	return NewStyles(DarkTheme())
}

func TestRenderTile_AllFields(t *testing.T) {
	c := cards.Card{
		ImageURL:    "https://img.example/1.png",
		Name:        "Ada Lovelace",
		Designation: "Engineer",
		Company:     "Analytical Engines",
		Email:       "ada@ae.io",
		Phone:       "111, 222",
		Website:     "https://ae.io",
		Address:     "London",
	}
	out := RenderTile(testStyles(), c, TileOptions{Width: 80, ShowImageURL: true})

	for _, want := range []string{
		"https://img.example/1.png", "Ada Lovelace", "Engineer", "Analytical Engines",
		"ada@ae.io", "111 / 222", "https://ae.io", "London",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderTile_OmitsEmptyFields(t *testing.T) {
	out := RenderTile(testStyles(), cards.Card{Name: "Solo"}, TileOptions{Width: 60, ShowImageURL: true})
	assert.Contains(t, out, "Solo")
	for _, icon := range linkIcons {
		assert.NotContains(t, out, icon)
	}
	assert.NotContains(t, out, "▣")
}

func TestRenderTile_ImageLineToggle(t *testing.T) {
	c := cards.Card{Name: "X", ImageURL: "https://img/x.png"}
	assert.NotContains(t, RenderTile(testStyles(), c, TileOptions{Width: 60}), "https://img/x.png")
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 1, Columns(60, 38))
	assert.Equal(t, 2, Columns(100, 38))
	assert.Equal(t, 3, Columns(140, 38))
	assert.Equal(t, 1, Columns(0, 0))
}

func TestRenderGrid(t *testing.T) {
	page := []cards.Card{{ID: 1, Name: "One"}, {ID: 2, Name: "Two"}, {ID: 3, Name: "Three"}}
	out := RenderGrid(testStyles(), page, GridOptions{Width: 140, MinColumnWidth: 38, Cursor: 1})
	for _, name := range []string{"One", "Two", "Three"} {
		assert.Contains(t, out, name)
	}
	// Three columns fit, so all names share the first text row.
	lines := strings.Split(out, "\n")
	found := false
	for _, l := range lines {
		if strings.Contains(l, "One") && strings.Contains(l, "Two") && strings.Contains(l, "Three") {
			found = true
		}
	}
	assert.True(t, found, "expected tiles side by side")

	assert.Empty(t, RenderGrid(testStyles(), nil, GridOptions{Width: 80}))
}

func TestRenderPager(t *testing.T) {
	s := testStyles()
	assert.Empty(t, RenderPager(s, cards.NewPager(0, 1, 10)))
	assert.Empty(t, RenderPager(s, cards.NewPager(10, 1, 10)))

	out := RenderPager(s, cards.NewPager(23, 3, 10))
	for _, want := range []string{"Previous", "1", "2", "3", "Next"} {
		assert.Contains(t, out, want)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	got := truncate("a very long company name", 10)
	assert.LessOrEqual(t, len([]rune(got)), 10)
	assert.True(t, strings.HasSuffix(got, "…"))
}
