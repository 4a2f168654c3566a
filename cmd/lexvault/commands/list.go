package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			materials, err := client.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(materials) == 0 {
				fmt.Println("No materials.")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tKIND\tSIZE\tUPLOADED")
			for _, m := range materials {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					m.ID, m.Name, m.Kind, m.Size, m.UploadedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}
