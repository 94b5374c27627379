package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command in an empty working directory with every
// flag reset to its default.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestPlainCommand(t *testing.T) {
	out, errOut, err := execute(t, "", "plain", `\sum_{n=1}^{N}{n}`)
	if err != nil {
		t.Fatalf("plain: %v\n%s", err, errOut)
	}
	if out != "sum{n=1}{N}{n}\n" {
		t.Errorf("stdout = %q", out)
	}
	if errOut != "" {
		t.Errorf("unexpected diagnostics:\n%s", errOut)
	}
}

func TestLatexCommandReadsStdin(t *testing.T) {
	out, _, err := execute(t, "1,5 [kg]\n", "latex")
	if err != nil {
		t.Fatal(err)
	}
	if out != "1{,}5 \\text{ kg}\n" {
		t.Errorf("stdout = %q", out)
	}
}

func TestConvertReportsDiagnostics(t *testing.T) {
	out, errOut, err := execute(t, "", "plain", `\Fred`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "\\Fred\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "<arg>:1:1:") || !strings.Contains(errOut, "LEX1005") {
		t.Errorf("stderr lacks the diagnostic:\n%s", errOut)
	}

	_, errOut, _ = execute(t, "", "--quiet", "plain", `\Fred`)
	if errOut != "" {
		t.Errorf("--quiet should hide infos:\n%s", errOut)
	}
}

func TestConvertJSONDiagnostics(t *testing.T) {
	_, errOut, err := execute(t, "", "--diagnostics-format", "json", "plain", `{x`)
	if err != nil {
		t.Fatal(err)
	}
	var payload struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(errOut), &payload); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, errOut)
	}
	if payload.Count != 1 {
		t.Errorf("count = %d", payload.Count)
	}
}

func TestConvertUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "[convert]\nmax_depth = 1\n")
	_, errOut, err := execute(t, "", "--config", path, "plain", `{{x}}`)
	if err == nil {
		t.Fatal("nesting above max_depth must fail")
	}
	if !strings.Contains(errOut, "CNV3001") {
		t.Errorf("stderr lacks CNV3001:\n%s", errOut)
	}
}

func TestTokenizeCommand(t *testing.T) {
	out, _, err := execute(t, "", "tokenize", "--format", "json", `\dfrac{1}{2}`)
	if err != nil {
		t.Fatal(err)
	}
	var tokens []map[string]any
	if err := json.Unmarshal([]byte(out), &tokens); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}
	if len(tokens) != 1 {
		t.Errorf("got %d top-level tokens", len(tokens))
	}

	if _, _, err := execute(t, "", "tokenize", "--surface", "html", "x"); err == nil {
		t.Error("unknown surface must be rejected")
	}
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprs.txt")
	data := "\\dfrac{1}{2}\n\n{{{{x}}}}\n1{,}5\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := writeConfig(t, t.TempDir(), "[convert]\nmax_depth = 3\n")

	out, errOut, err := execute(t, "", "--config", cfg, "batch", "--ui", "off", "--jobs", "2", path)
	if err == nil || !strings.Contains(err.Error(), "1 of 3 expressions failed") {
		t.Fatalf("err = %v", err)
	}
	if out != "\\dfrac{1}{2}\n\n1,5\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, path+":3:1:") {
		t.Errorf("diagnostic should name the line:\n%s", errOut)
	}
}

func TestRepairCommand(t *testing.T) {
	out, errOut, err := execute(t, "", "repair", `\dfrac{1}{2`)
	if err != nil {
		t.Fatal(err)
	}
	if out != "\\dfrac{1}{2}\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "fixed LEX1001: close the group") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestFunctionsCommand(t *testing.T) {
	out, _, err := execute(t, "", "functions")
	if err != nil {
		t.Fatal(err)
	}
	rows := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		if name, _, ok := strings.Cut(line, " "); ok {
			rows[name] = line
		}
	}
	want := map[string][]string{
		"sum": {"sum{sub}{sup}{x}", `\sum_{sub}^{sup} {x}`},
		"sin": {"sin{x}", `\sin({x})`},
	}
	for name, parts := range want {
		for _, part := range parts {
			if !strings.Contains(rows[name], part) {
				t.Errorf("%s row %q lacks %q", name, rows[name], part)
			}
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json", "--hash")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Tool != "texconv" || payload.GitCommit != "unknown" {
		t.Errorf("payload = %+v", payload)
	}
}
