package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lexvault/internal/domain"
)

func updateCmd() *cobra.Command {
	var name, description string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a material's name or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var update domain.DetailsUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if update.Name == nil && update.Description == nil {
				return errors.New("nothing to update; use --name or --description")
			}
			m, err := client.UpdateDetails(cmd.Context(), domain.MaterialID(args[0]), update)
			if err != nil {
				return err
			}
			fmt.Printf("%s Updated %s: %q\n", okMark, m.ID, m.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	return cmd
}
