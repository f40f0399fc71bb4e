package cli

import (
	"fmt"

	"hallbook/internal/config"
	"hallbook/internal/constants"
)

// DoctorCmd runs health checks: config store, keyring, token, and backend
// reachability.
type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: settings store readable
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		fmt.Printf("❌ Settings store: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Settings store: OK (%s)\n", settings.APIBaseURL)
	}

	// Check 2: OS keyring
	if config.KeyringAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: unavailable (set %s instead)\n", constants.TokenEnvVar)
	}

	// Check 3: token present
	if _, err := config.GetToken(); err != nil {
		fmt.Printf("❌ API token: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ API token: OK\n")
	}

	// Check 4: backend reachable (only meaningful with a token)
	client, err := ctx.Client()
	if err == nil {
		reqCtx, cancel := CommandContext()
		defer cancel()
		halls, err := client.MyHalls(reqCtx)
		if err != nil {
			fmt.Printf("❌ Backend reachable: FAIL\n   Error: %v\n", ctx.HandleAPIError(err))
			hasError = true
		} else {
			fmt.Printf("✓ Backend reachable: OK (%d hall(s))\n", len(halls))
		}
	} else {
		fmt.Printf("⊘ Backend reachable: SKIPPED (no token)\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
