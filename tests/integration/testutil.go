// Package integration provides CLI integration tests for remit.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// remitBin is the path to the built remit binary.
	remitBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetRemitBin sets the path to the remit binary (called from TestMain).
func SetRemitBin(path string) {
	remitBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated test environment with its own config and data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build remit: %v", buildErr)
	}
	if remitBin == "" {
		t.Fatal("remit binary not built (remitBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: sqlite\ndata_dir: " + dataDir + "\nauth_secret: integration-test-secret\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// CmdResult holds the result of a remit command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunRemit executes the remit CLI with the given arguments.
// Returns stdout, stderr, and exit code.
func (e *TestEnv) RunRemit(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(remitBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run remit: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunRemit executes the remit CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunRemit(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunRemit(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("remit %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// TransferRecord mirrors the CLI JSON shape for a transfer.
type TransferRecord struct {
	Address     string  `json:"address"`
	Sender      string  `json:"sender"`
	Recipient   string  `json:"recipient"`
	Amount      uint64  `json:"amount_lamports"`
	AmountUSDC  string  `json:"amount_usdc"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
	Memo        string  `json:"memo"`
	Reference   string  `json:"reference"`
}

// BalanceRecord mirrors the CLI JSON shape for a wallet balance.
type BalanceRecord struct {
	Identity        string `json:"identity"`
	BalanceLamports uint64 `json:"balance_lamports"`
	BalanceUSDC     string `json:"balance_usdc"`
}

// StatsRecord mirrors the CLI JSON shape for ledger stats.
type StatsRecord struct {
	Admin          string `json:"admin"`
	FeeRateBps     uint16 `json:"fee_rate_bps"`
	TransferCount  uint64 `json:"transfer_count"`
	TotalVolume    uint64 `json:"total_volume_lamports"`
	TotalVolumeUSD string `json:"total_volume_usdc"`
}
