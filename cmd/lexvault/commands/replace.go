package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lexvault/internal/domain"
)

func replaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replace <id> <file>",
		Short: "Replace a material's content",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			done := startSpinner("Encrypting replacement")
			m, err := client.Replace(cmd.Context(), domain.MaterialID(args[0]), content)
			if err != nil {
				done(failMark + " Replace failed: " + describe(err))
				return err
			}
			done(fmt.Sprintf("%s Replaced content of %q (%d bytes)", okMark, m.Name, m.Size))
			return nil
		},
	}
}
