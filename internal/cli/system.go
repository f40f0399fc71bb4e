package cli

import (
	"fmt"
	"path/filepath"

	"hallbook/internal/config"
	"hallbook/internal/constants"
)

// DebugCmd dumps the local state useful when troubleshooting: paths,
// settings, and token source.
type DebugCmd struct{}

func (cmd *DebugCmd) Run(ctx *Context) error {
	fmt.Printf("Version:     %s\n", constants.Version)
	fmt.Printf("Config dir:  %s\n", ctx.Store.ConfigDir())
	fmt.Printf("Log file:    %s\n", filepath.Join(ctx.Store.ConfigDir(), "logs", "hallbook.log"))

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	fmt.Printf("API URL:     %s\n", settings.APIBaseURL)
	fmt.Printf("Hall:        %s\n", orNone(settings.SelectedHall))
	fmt.Printf("Theme:       %s\n", settings.Theme)
	fmt.Printf("Page size:   %d\n", settings.PageSize)

	source := "none"
	if _, err := config.GetToken(); err == nil {
		source = "keyring"
		if config.TokenFromEnv() {
			source = "environment"
		}
	}
	fmt.Printf("Token:       %s\n", source)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// ThemeCmd persists the dashboard color theme.
type ThemeCmd struct {
	Name string `arg:"" enum:"dark,light" help:"Theme name: dark or light."`
}

func (cmd *ThemeCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	settings.Theme = cmd.Name
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s.\n", cmd.Name)
	return nil
}
