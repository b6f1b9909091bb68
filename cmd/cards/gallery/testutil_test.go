// Test utilities for the gallery package: a scripted card service and
// helpers that drive the model through Update without a running program.
package gallery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"cardgallery/internal/cards"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// FAKE SERVICE
// =============================================================================

type fakeUpload struct {
	name string
	body []byte
}

// fakeService is a scripted CardService that records every call.
type fakeService struct {
	mu sync.Mutex

	all       []cards.Card
	allErr    error
	results   map[string][]cards.Card
	searchErr error
	uploadErr error

	fetchCalls int
	queries    []string
	uploads    []fakeUpload
}

func newFakeService(all []cards.Card) *fakeService {
	return &fakeService{all: all, results: make(map[string][]cards.Card)}
}

func (f *fakeService) FetchAll(ctx context.Context) ([]cards.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.allErr != nil {
		return nil, f.allErr
	}
	return append([]cards.Card(nil), f.all...), nil
}

func (f *fakeService) Search(ctx context.Context, query string) ([]cards.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.results[query], nil
}

func (f *fakeService) Upload(ctx context.Context, filename string, r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, fakeUpload{name: filename, body: body})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return []byte(`{"ok":true}`), nil
}

func (f *fakeService) set(fn func(f *fakeService)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeService) snapshot() (fetches int, queries []string, uploads []fakeUpload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchCalls, append([]string(nil), f.queries...), append([]fakeUpload(nil), f.uploads...)
}

// =============================================================================
// FIXTURES
// =============================================================================

// sampleCards returns n cards named "Person 01" onward.
func sampleCards(n int) []cards.Card {
	list := make([]cards.Card, n)
	for i := range list {
		list[i] = cards.Card{
			ID:          int64(i + 1),
			Name:        fmt.Sprintf("Person %02d", i+1),
			Company:     "Acme",
			Designation: "Engineer",
			Email:       fmt.Sprintf("p%02d@acme.test", i+1),
		}
	}
	return list
}

// memFile serves uploads from memory instead of disk.
func memFile(content string) func(string) (io.ReadCloser, error) {
	return func(string) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewBufferString(content)), nil
	}
}

// =============================================================================
// MODEL DRIVERS
// =============================================================================

// newTestModel builds a sized gallery and applies the initial fetch-all.
func newTestModel(t *testing.T, svc CardService) Model {
	t.Helper()
	m := New(svc, Config{Theme: "dark", Extensions: []string{".png", ".jpg"}})
	t.Cleanup(m.Shutdown)

	m = update(t, m, tea.WindowSizeMsg{Width: 140, Height: 48})
	return settle(t, m, m.Init())
}

// update applies one message and discards the returned command.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := step(t, m, msg)
	return next
}

// step applies one message and returns the command for the caller to run.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

// settle runs cmd and feeds every resulting message back into the model
// until nothing is left. Spinner ticks are dropped so the loop terminates.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range drain(cmd) {
		if _, ok := msg.(spinner.TickMsg); ok {
			continue
		}
		var next tea.Cmd
		m, next = step(t, m, msg)
		m = settle(t, m, next)
	}
	return m
}

// drain runs cmd, expanding batches, and returns the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// listMsg extracts the cardsLoadedMsg produced by cmd without applying it.
func listMsg(t *testing.T, cmd tea.Cmd) cardsLoadedMsg {
	t.Helper()
	for _, msg := range drain(cmd) {
		if lm, ok := msg.(cardsLoadedMsg); ok {
			return lm
		}
	}
	t.Fatal("command produced no cardsLoadedMsg")
	return cardsLoadedMsg{}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = step(t, m, k)
		m = settle(t, m, cmd)
	}
	return m
}

// typeQuery focuses the search box and types q without submitting.
func typeQuery(t *testing.T, m Model, q string) Model {
	t.Helper()
	m = update(t, m, runes("/"))
	require.Equal(t, FocusSearch, m.focus)
	for _, r := range q {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}
