package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/api"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/config"
	"github.com/Kavin-Antony/Smart-Contract-Based-Legal-Consensus-System/models"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <address>",
	Short: "Mint a bearer token for an address",
	Long: `token signs a bearer token with JWT_SECRET that authenticates requests
as the given address. It is meant for local use and test scripts.`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to TOKEN_TTL)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if err := validator.New().Var(args[0], "required,eth_addr"); err != nil {
		return fmt.Errorf("invalid address %q: %w", args[0], err)
	}
	conf, err := config.Load()
	if err != nil {
		return err
	}
	ttl := conf.TokenTTL
	if tokenTTL > 0 {
		ttl = tokenTTL
	}

	token, exp, err := api.NewAuth(conf.JWTSecret, ttl, "").IssueToken(models.NewAddress(args[0]))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(api.TokenResponse{Token: token, Address: models.NewAddress(args[0]), ExpiresAt: exp})
}
