package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gcpick/internal/picker"
)

// Session is one modal point-picking pass over a frame. It blocks the caller
// until the operator finishes or closes it; all state lives in the model and
// nothing is persisted here.
type Session struct {
	model Model
}

// New validates the configuration and prepares a session.
func New(cfg Config) (*Session, error) {
	m, err := newModel(cfg)
	if err != nil {
		return nil, err
	}
	return &Session{model: m}, nil
}

// Run drives the session until the operator finishes or closes it. On
// success the clicked pixels come back in click order; closing early returns
// the incomplete-selection error.
func (s *Session) Run(ctx context.Context) ([]picker.Pixel, error) {
	prog := tea.NewProgram(s.model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	out, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	final, ok := out.(Model)
	if !ok {
		return nil, errors.New("session: unexpected final model")
	}
	if final.closeErr != nil {
		return nil, final.closeErr
	}
	return final.col.Finalize()
}
