package main_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// reportExport mirrors the JSON written by the evaluate command.
type reportExport struct {
	Name      string `json:"name"`
	Algorithm string `json:"algorithm"`
	Report    struct {
		DomainSize           int      `json:"domain_size"`
		DomainConsistency    bool     `json:"domain_consistency"`
		RangeConsistency     bool     `json:"range_consistency"`
		MaxDDTEntry          *int     `json:"max_ddt_entry"`
		MaxLinearCorrelation *float64 `json:"max_linear_correlation"`
		IsBent               bool     `json:"is_bent"`
	} `json:"report"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

// runCLI executes the sboxeval-cli via `go run ./cmd/sboxeval-cli` from the repository root.
func runCLI(t *testing.T, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	cmdArgs := append([]string{"run", "./cmd/sboxeval-cli"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	// cmd/sboxeval-cli tests are executed from that directory
	cmd.Dir = filepath.Join("..", "..")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestHelpAndVersion(t *testing.T) {
	out, err := runCLI(t, 60*time.Second, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v, out: %s", err, out)
	}
	if !strings.Contains(out, "sboxeval-cli") || !strings.Contains(out, "evaluate") {
		t.Fatalf("help output missing expected commands, got: %s", out)
	}

	out, err = runCLI(t, 60*time.Second, "version")
	if err != nil {
		t.Fatalf("version command failed: %v, out: %s", err, out)
	}
	if !strings.Contains(out, "sboxeval-cli version") {
		t.Fatalf("unexpected version output: %s", out)
	}
}

func TestEvaluateBuiltinAES(t *testing.T) {
	out, err := runCLI(t, 60*time.Second, "evaluate", "--builtin", "aes")
	if err != nil {
		t.Fatalf("evaluate failed: %v, out: %s", err, out)
	}

	var export reportExport
	if err := json.Unmarshal([]byte(out), &export); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if export.Report.MaxDDTEntry == nil || *export.Report.MaxDDTEntry != 4 {
		t.Fatalf("expected differential uniformity 4, got %v", export.Report.MaxDDTEntry)
	}
	if export.Report.MaxLinearCorrelation == nil || *export.Report.MaxLinearCorrelation != 0.125 {
		t.Fatalf("expected correlation 0.125, got %v", export.Report.MaxLinearCorrelation)
	}
	if export.Report.IsBent {
		t.Fatal("AES must not be bent")
	}
}

func TestEvaluateInputFileWithTiming(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "present.tsv")
	if err := os.WriteFile(input, []byte("c 5 6 b 9 0 a d 3 e f 8 4 7 1 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "report.json")

	out, err := runCLI(t, 60*time.Second, "evaluate", "--input", input, "--preset", "nibble", "--timing", "--output", output)
	if err != nil {
		t.Fatalf("evaluate failed: %v, out: %s", err, out)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("report file not written: %v", err)
	}
	var export reportExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("invalid JSON report: %v", err)
	}
	if !export.Report.DomainConsistency || *export.Report.MaxDDTEntry != 4 {
		t.Fatalf("unexpected report: %s", data)
	}
}

func TestEvaluateMissingInput(t *testing.T) {
	out, err := runCLI(t, 60*time.Second, "evaluate")
	if err == nil {
		t.Fatalf("expected failure without --input or --builtin, got: %s", out)
	}
	if !strings.Contains(out, "--input or --builtin") {
		t.Fatalf("expected usage hint, got: %s", out)
	}
}

func TestBenchmarkCommand(t *testing.T) {
	out, err := runCLI(t, 120*time.Second, "benchmark", "--builtin", "present", "--iterations", "2", "--naive")
	if err != nil {
		t.Fatalf("benchmark failed: %v, out: %s", err, out)
	}
	for _, want := range []string{"S-box Evaluation Benchmark", "DDT:", "Walsh (fast):", "Walsh (naive):"} {
		if !strings.Contains(out, want) {
			t.Fatalf("benchmark output missing %q:\n%s", want, out)
		}
	}
}
