// Command envelope is a small CLI wrapper around the envelope library: it
// generates identities and drives Encrypt/Decrypt against files. The
// library itself takes no flags and does no I/O; everything in this
// package exists only to make the library usable from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "envelope",
		Short: "Multi-recipient hybrid encryption for Ed25519 identities",
		Long: `envelope seals a file so that any one of a list of Ed25519 identities
can open it, using an ephemeral X25519 key, SHAKE256 key derivation, and
AES-256-GCM.`,
		SilenceUsage: true,
	}

	root.AddCommand(newKeygenCmd())
	root.AddCommand(newEncryptCmd())
	root.AddCommand(newDecryptCmd())
	return root
}
