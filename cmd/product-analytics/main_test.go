package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestVersion(t *testing.T) {
	if out := run(t, "version"); !strings.Contains(out, version) {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestDemoThenReportFlags(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "products.json")
	report := filepath.Join(dir, "out", "report.txt")

	out := run(t, "demo", "--input", data, "--output", report, "--log-level", "error")
	if !strings.Contains(out, "Total Revenue: $94,495.35") {
		t.Fatalf("demo output missing revenue:\n%s", out)
	}
	if _, err := os.Stat(report); err != nil {
		t.Fatalf("report not written: %v", err)
	}

	out = run(t, "report", "-i", data, "-o", report, "--top", "2", "--log-level", "error")
	if !strings.Contains(out, "Top 2 Products:") || strings.Contains(out, "Keyboard:") {
		t.Fatalf("top flag not applied:\n%s", out)
	}

	out = run(t, "inventory", "-i", data, "--reorder-level", "6", "--log-level", "error")
	if !strings.Contains(out, "Keyboard: Current stock 5, Reorder 1") {
		t.Fatalf("reorder level not applied:\n%s", out)
	}
}

func TestSalesPositionalFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sales.json")
	body := `[{"date":"2024-01-01","amount":10},{"date":"2024-01-02","amount":20}]`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out := run(t, "sales", p, "-w", "2", "--log-level", "error")
	if !strings.Contains(out, "2024-01-02: $20.00 (avg $15.00)") {
		t.Fatalf("unexpected sales output:\n%s", out)
	}
}

func TestInvalidWindowFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"sales", "--window", "0", "--log-level", "error"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected validation error for window 0")
	}
}
