package cli

import (
	"fmt"

	"customerapi/internal/services"

	"github.com/spf13/cobra"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the customer API",
	Long: `Sign an HS256 token with JWT_SECRET for the given subject. The token is
valid for AUTH_TOKEN_TTL and is printed to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required")
		}

		token, err := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL).IssueToken(tokenSubject)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "subject (sub claim) of the token")
	_ = tokenCmd.MarkFlagRequired("subject")
}
