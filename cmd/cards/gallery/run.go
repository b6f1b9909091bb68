package gallery

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive gallery and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, service CardService, cfg Config) error {
	model := New(service, cfg)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.Shutdown()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("gallery: %w", err)
	}
	return nil
}
