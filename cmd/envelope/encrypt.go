package main

import (
	"crypto/ed25519"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/duskcell/envelope/internal/envelope"
	"github.com/duskcell/envelope/internal/identity"
)

func newEncryptCmd() *cobra.Command {
	var recipientHex []string
	var inPath, outPath string

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Seal a file for one or more recipients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(recipientHex) == 0 {
				return fmt.Errorf("at least one --recipient is required")
			}

			recipients := make([]ed25519.PublicKey, len(recipientHex))
			for i, h := range recipientHex {
				pub, err := identity.PublicKeyFromHex(h)
				if err != nil {
					return fmt.Errorf("recipient %d: %w", i, err)
				}
				recipients[i] = pub
			}

			plaintext, err := readInput(inPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			blob, err := envelope.Encrypt(recipients, plaintext)
			if err != nil {
				return fmt.Errorf("encrypt: %w", err)
			}

			return writeOutput(outPath, blob)
		},
	}

	cmd.Flags().StringArrayVar(&recipientHex, "recipient", nil, "hex-encoded Ed25519 public key (repeatable)")
	cmd.Flags().StringVar(&inPath, "in", "-", "input file, - for stdin")
	cmd.Flags().StringVar(&outPath, "out", "-", "output file, - for stdout")
	return cmd
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
