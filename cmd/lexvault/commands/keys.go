package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func keysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the daemon's public keys and fingerprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := client.Keys(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Signing fingerprint:  %s\n", k.Fingerprints.Signing)
			fmt.Printf("Exchange fingerprint: %s\n", k.Fingerprints.Exchange)
			if verbose {
				fmt.Printf("Signing key:  %s\n", k.SigningPublicKey)
				fmt.Printf("Exchange key: %s\n", k.ExchangePublicKey)
			}
			return nil
		},
	}
}
