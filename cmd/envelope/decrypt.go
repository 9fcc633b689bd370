package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/duskcell/envelope/internal/envelope"
	"github.com/duskcell/envelope/internal/identity"
)

func newDecryptCmd() *cobra.Command {
	var identityPath, inPath, outPath string
	var passphrase bool

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Open a sealed file using a saved identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := loadIdentity(identityPath, passphrase)
			if err != nil {
				return fmt.Errorf("load identity: %w", err)
			}

			blob, err := readInput(inPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			plaintext, err := envelope.Decrypt(id.Seed, blob)
			if err != nil {
				return fmt.Errorf("decrypt: %w", err)
			}

			return writeOutput(outPath, plaintext)
		},
	}

	cmd.Flags().StringVar(&identityPath, "identity", "", "identity file written by keygen")
	cmd.Flags().BoolVar(&passphrase, "passphrase", false, "prompt for the identity file's passphrase")
	cmd.Flags().StringVar(&inPath, "in", "-", "input file, - for stdin")
	cmd.Flags().StringVar(&outPath, "out", "-", "output file, - for stdout")
	_ = cmd.MarkFlagRequired("identity")
	return cmd
}

func loadIdentity(path string, needsPassphrase bool) (*identity.Identity, error) {
	if !needsPassphrase {
		return identity.Load(path)
	}

	fmt.Fprint(os.Stderr, "passphrase: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return identity.LoadEncrypted(path, string(pw))
}
