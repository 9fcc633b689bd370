package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duskcell/envelope/internal/identity"
)

func newKeygenCmd() *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "keygen <output-file>",
		Short: "Generate a new Ed25519 identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			id, err := identity.Generate()
			if err != nil {
				return fmt.Errorf("generate identity: %w", err)
			}

			if passphrase != "" {
				if err := id.SaveEncrypted(path, passphrase); err != nil {
					return fmt.Errorf("save identity: %w", err)
				}
			} else if err := id.Save(path); err != nil {
				return fmt.Errorf("save identity: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "public key: %s\n", id.PublicKeyHex())
			return nil
		},
	}

	cmd.Flags().StringVar(&passphrase, "passphrase", "", "protect the identity file with a passphrase")
	return cmd
}
