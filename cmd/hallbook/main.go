package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"hallbook/internal/cli"
	"hallbook/internal/config"
	"hallbook/internal/constants"
	"hallbook/internal/errors"
	"hallbook/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Settings database path." type:"path" default:"~/.config/hallbook/hallbook.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Login  cli.LoginCmd  `cmd:"" help:"Store the API token for your account."`
	Logout cli.LogoutCmd `cmd:"" help:"Remove the stored API token."`
	Halls  cli.HallsCmd  `cmd:"" help:"List your halls."`
	Slot   struct {
		List   cli.SlotListCmd   `cmd:"" help:"List availability slots."`
		Add    cli.SlotAddCmd    `cmd:"" help:"Add an availability slot."`
		Edit   cli.SlotEditCmd   `cmd:"" help:"Edit an availability slot."`
		Delete cli.SlotDeleteCmd `cmd:"" help:"Delete an availability slot."`
	} `cmd:"" help:"Manage availability slots."`
	Booking struct {
		List   cli.BookingListCmd   `cmd:"" help:"List bookings."`
		Status cli.BookingStatusCmd `cmd:"" help:"Change a booking's status."`
	} `cmd:"" help:"Manage bookings."`
	Revenue cli.RevenueCmd `cmd:"" help:"Show your earnings summary."`
	Theme   cli.ThemeCmd   `cmd:"" help:"Set the dashboard color theme."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	DebugCmd cli.DebugCmd `cmd:"" name:"debug" help:"Show local state for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Hall owner dashboard for the venue booking platform"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	store := config.NewStore(CLI.Config)
	if err := store.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: store.ConfigDir(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
