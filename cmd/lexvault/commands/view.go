package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lexvault/internal/domain"
)

// view <id>: verify and decrypt a material.
func viewCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Verify, decrypt and show a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			done := startSpinner("Verifying and decrypting")
			v, err := client.View(cmd.Context(), domain.MaterialID(args[0]))
			if err != nil {
				done(failMark + " " + describe(err))
				return err
			}
			if out == "" {
				done("")
				_, err := os.Stdout.Write(v.Plaintext)
				return err
			}
			if err := os.WriteFile(out, v.Plaintext, 0o600); err != nil {
				done(failMark + " Could not write " + out)
				return err
			}
			done(fmt.Sprintf("%s Verified %q and wrote %d bytes (%s) to %s",
				okMark, v.Material.Name, len(v.Plaintext), v.MIMEType, out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write content to this file instead of stdout")
	return cmd
}
