package cli

import (
	"fmt"

	"hallbook/internal/api"
	"hallbook/internal/config"
	"hallbook/internal/logger"
)

// LoginCmd stores an API token after verifying it against the backend.
// Token issuance itself happens on the platform's website; this command
// only takes custody of the result.
type LoginCmd struct {
	Token  string `short:"t" help:"Bearer token issued by the booking platform." required:""`
	APIURL string `help:"Backend base URL. Persisted when given."`
}

func (cmd *LoginCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	if cmd.APIURL != "" {
		settings.APIBaseURL = cmd.APIURL
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return err
		}
	}

	// Verify the token before storing it so a typo fails loudly now
	// instead of silently later.
	client := api.New(settings.APIBaseURL, cmd.Token)
	reqCtx, cancel := CommandContext()
	defer cancel()
	halls, err := client.MyHalls(reqCtx)
	if err != nil {
		return ctx.HandleAPIError(fmt.Errorf("token verification failed: %w", err))
	}

	if err := config.SetToken(cmd.Token); err != nil {
		return err
	}
	logger.Info("Logged in", "halls", len(halls))
	fmt.Printf("Logged in. You own %d hall(s).\n", len(halls))
	return nil
}

// LogoutCmd removes the stored API token.
type LogoutCmd struct{}

func (cmd *LogoutCmd) Run(ctx *Context) error {
	if err := config.DeleteToken(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}
