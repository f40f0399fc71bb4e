package cli

import (
	"fmt"
)

// HallsCmd lists the halls owned by the signed-in user.
type HallsCmd struct {
	Select string `help:"Hall ID to persist as the default selection."`
}

func (cmd *HallsCmd) Run(ctx *Context) error {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	reqCtx, cancel := CommandContext()
	defer cancel()
	halls, err := client.MyHalls(reqCtx)
	if err != nil {
		return ctx.HandleAPIError(err)
	}

	if cmd.Select != "" {
		found := false
		for _, hall := range halls {
			if hall.ID == cmd.Select {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("hall %q is not one of your halls", cmd.Select)
		}
		if err := ctx.Store.SetSelectedHall(cmd.Select); err != nil {
			return err
		}
	}

	settings, _ := ctx.Store.GetSettings()
	if len(halls) == 0 {
		fmt.Println("You do not own any halls yet.")
		return nil
	}
	for _, hall := range halls {
		marker := " "
		if hall.ID == settings.SelectedHall {
			marker = "*"
		}
		fmt.Printf("%s %-36s  %-24s %s\n", marker, hall.ID, hall.Name, hall.Location)
	}
	return nil
}
