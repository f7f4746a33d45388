// Shared helpers for remit CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/remiteasy/ledger/internal/derive"
	"github.com/remiteasy/ledger/internal/engine"
	"github.com/remiteasy/ledger/internal/sqlite"
	"github.com/remiteasy/ledger/pkg/types"
	"github.com/remiteasy/ledger/pkg/units"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: appConfig.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// newEngine wires the attached backend into a lifecycle engine.
func newEngine(backend *sqlite.Backend) *engine.Engine {
	return engine.New(backend, derive.Addresser{})
}

// resolveIdentity turns a CLI wallet argument into an identity. A value
// that parses as a base58 identity is used as-is; anything else is
// treated as a local wallet name and derived deterministically, so
// "alice" always maps to the same identity on every machine.
func resolveIdentity(s string) (types.Identity, error) {
	if s == "" {
		return "", fmt.Errorf("wallet must not be empty")
	}
	if id, err := types.ParseIdentity(s); err == nil {
		return id, nil
	}
	return derive.WalletIdentity(s), nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// transferJSON is the CLI JSON shape for a transfer.
type transferJSON struct {
	Address     string  `json:"address"`
	Sender      string  `json:"sender"`
	Recipient   string  `json:"recipient"`
	Amount      uint64  `json:"amount_lamports"`
	AmountUSDC  string  `json:"amount_usdc"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
	Memo        string  `json:"memo,omitempty"`
	Reference   string  `json:"reference"`
}

func toTransferJSON(t *types.Transfer) transferJSON {
	out := transferJSON{
		Address:    t.Address,
		Sender:     string(t.Sender),
		Recipient:  string(t.Recipient),
		Amount:     t.Amount,
		AmountUSDC: units.FormatUSDC(t.Amount),
		Status:     t.Status,
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		Memo:       t.Memo,
		Reference:  t.Reference,
	}
	if t.CompletedAt != nil {
		s := t.CompletedAt.Format(time.RFC3339)
		out.CompletedAt = &s
	}
	return out
}

// printTransfer writes a transfer to stdout, as JSON when --json is set
// and as aligned text otherwise.
func printTransfer(t *types.Transfer) error {
	if flagJSON {
		return printJSON(toTransferJSON(t))
	}

	fmt.Printf("address:    %s\n", t.Address)
	fmt.Printf("sender:     %s\n", t.Sender)
	fmt.Printf("recipient:  %s\n", t.Recipient)
	fmt.Printf("amount:     %s USDC\n", units.FormatUSDC(t.Amount))
	fmt.Printf("status:     %s\n", t.Status)
	fmt.Printf("created:    %s\n", t.CreatedAt.Format(time.RFC3339))
	if t.CompletedAt != nil {
		fmt.Printf("settled:    %s\n", t.CompletedAt.Format(time.RFC3339))
	}
	if d := t.Duration(); d != nil {
		fmt.Printf("duration:   %s\n", d)
	}
	if t.Memo != "" {
		fmt.Printf("memo:       %s\n", t.Memo)
	}
	fmt.Printf("reference:  %s\n", t.Reference)
	return nil
}

// printTransferList writes transfers as a one-line-per-record table, or
// a JSON array when --json is set.
func printTransferList(transfers []*types.Transfer) error {
	if flagJSON {
		out := make([]transferJSON, 0, len(transfers))
		for _, t := range transfers {
			out = append(out, toTransferJSON(t))
		}
		return printJSON(out)
	}

	if len(transfers) == 0 {
		fmt.Println("no transfers")
		return nil
	}

	for _, t := range transfers {
		fmt.Printf("%s  %-9s  %12s USDC  %s -> %s\n",
			t.Address, t.Status, units.FormatUSDC(t.Amount), t.Sender, t.Recipient)
	}
	return nil
}

// parseAmountUSDC converts a decimal USDC string from the CLI into
// lamports, reporting a user-facing error on bad input.
func parseAmountUSDC(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("--amount is required")
	}
	lamports, err := units.ParseUSDC(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return lamports, nil
}

// fail prints a prefixed error to stderr and exits with code.
func fail(code int, prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	os.Exit(code)
}
