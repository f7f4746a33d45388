// Token command for the remit CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/remiteasy/ledger/internal/api"
)

var (
	tokenWallet string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API bearer token for a wallet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := resolveIdentity(tokenWallet)
		if err != nil {
			fail(exitUserError, "token", err)
		}

		secret := appConfig.GetString(cfgKeyAuthSecret)
		if secret == "" {
			fail(exitUserError, "token", fmt.Errorf("auth_secret is not set in config.yaml"))
		}

		token, err := api.MintToken([]byte(secret), caller, tokenTTL)
		if err != nil {
			fail(exitSysError, "token", err)
		}

		if flagJSON {
			return printJSON(map[string]string{
				"identity": string(caller),
				"token":    token,
			})
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenWallet, "wallet", "", "wallet name or identity the token acts as (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	tokenCmd.MarkFlagRequired("wallet")
}
