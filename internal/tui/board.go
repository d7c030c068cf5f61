package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Brooklss/Quarterly-Life-OS/internal/engine"
)

// RunBoard shows the board over svc, which the caller has loaded already.
func RunBoard(ctx context.Context, svc *engine.Service, rep engine.RunReport, out io.Writer) error {
	m := newBoardModel(ctx, svc, rep)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
