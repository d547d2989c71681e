package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var hashPasswordCmd = &cobra.Command{
	Use:     "hash-password <password>",
	Short:   "Generate a bcrypt hash for DEV_PASSWORD_HASH",
	Example: "  lawconsensus hash-password 0i2rinbcp12yc31h",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hashed, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("generate hash: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "DEV_PASSWORD_HASH=%s\n", hashed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
