package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"lexvault/internal/domain"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a material and its encrypted content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), domain.MaterialID(args[0])); err != nil {
				return err
			}
			fmt.Printf("%s Deleted %s\n", okMark, args[0])
			return nil
		},
	}
}
