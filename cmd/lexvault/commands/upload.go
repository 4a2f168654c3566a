package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lexvault/internal/domain"
)

// upload <file>: seal a file and store it.
func uploadCmd() *cobra.Command {
	var name, description, kind string
	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Encrypt, sign and store a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			k := domain.MaterialKind(kind)
			if kind == "" {
				guessed, ok := kindFromPath(path)
				if !ok {
					return fmt.Errorf("cannot guess kind of %s; use --kind", path)
				}
				k = guessed
			}

			done := startSpinner("Encrypting and uploading " + filepath.Base(path))
			m, err := client.Upload(cmd.Context(), domain.UploadRequest{
				Name:        name,
				Description: description,
				Kind:        k,
				Content:     content,
			})
			if err != nil {
				done(failMark + " Upload failed: " + describe(err))
				return err
			}
			done(fmt.Sprintf("%s Uploaded %q as %s (%d bytes)", okMark, m.Name, m.ID, m.Size))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "material name (default: file name)")
	cmd.Flags().StringVar(&description, "description", "", "material description")
	cmd.Flags().StringVar(&kind, "kind", "", "pdf, word, image, video, txt or excel (default: from extension)")
	return cmd
}
