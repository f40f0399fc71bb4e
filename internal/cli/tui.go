package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hallbook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, client),
		tea.WithAltScreen(),
		// Focus reporting drives the refetch-on-focus behavior.
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
