// Wallet commands for the remit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiteasy/ledger/internal/derive"
	"github.com/remiteasy/ledger/pkg/units"
)

var (
	walletFundWallet  string
	walletFundAmount  string
	walletBalanceName string
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage local wallets and their holdings",
}

var walletAddressCmd = &cobra.Command{
	Use:   "address NAME",
	Short: "Print the identity derived from a wallet name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := derive.WalletIdentity(args[0])
		if flagJSON {
			return printJSON(map[string]string{"name": args[0], "identity": string(id)})
		}
		fmt.Println(id)
		return nil
	},
}

var walletFundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Credit a wallet with USDC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := resolveIdentity(walletFundWallet)
		if err != nil {
			fail(exitUserError, "wallet fund", err)
		}
		lamports, err := parseAmountUSDC(walletFundAmount)
		if err != nil {
			fail(exitUserError, "wallet fund", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "wallet fund", err)
		}
		defer backend.Detach()

		if err := newEngine(backend).Deposit(cmd.Context(), to, lamports); err != nil {
			fail(exitUserError, "wallet fund", err)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"identity":        string(to),
				"amount_lamports": lamports,
				"amount_usdc":     units.FormatUSDC(lamports),
			})
		}
		fmt.Printf("funded %s with %s USDC\n", to, units.FormatUSDC(lamports))
		return nil
	},
}

var walletBalanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the spendable balance of a wallet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		of, err := resolveIdentity(walletBalanceName)
		if err != nil {
			fail(exitUserError, "wallet balance", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "wallet balance", err)
		}
		defer backend.Detach()

		balance, err := newEngine(backend).Balance(cmd.Context(), of)
		if err != nil {
			fail(exitSysError, "wallet balance", err)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"identity":         string(of),
				"balance_lamports": balance,
				"balance_usdc":     units.FormatUSDC(balance),
			})
		}
		fmt.Printf("%s USDC\n", units.FormatUSDC(balance))
		return nil
	},
}

func init() {
	walletFundCmd.Flags().StringVar(&walletFundWallet, "wallet", "", "wallet name or identity to credit (required)")
	walletFundCmd.Flags().StringVar(&walletFundAmount, "amount", "", "amount in USDC, e.g. 12.50 (required)")
	walletFundCmd.MarkFlagRequired("wallet")
	walletFundCmd.MarkFlagRequired("amount")

	walletBalanceCmd.Flags().StringVar(&walletBalanceName, "wallet", "", "wallet name or identity (required)")
	walletBalanceCmd.MarkFlagRequired("wallet")

	walletCmd.AddCommand(walletAddressCmd)
	walletCmd.AddCommand(walletFundCmd)
	walletCmd.AddCommand(walletBalanceCmd)
}
