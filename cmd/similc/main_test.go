package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const decaySource = `
MODEL R
    PARAMETER
    d AS REAL
    VARIABLE
    X AS ANY
    EQUATION
    $X := -d*X
END

PROCESS Batch
    UNIT
    r1 AS R
    SET
    r1.d := 0.3
    INITIAL
    r1.X := 10
    SOLUTIONPARAMETERS
    ReportingInterval := 0.1
    SimulationTime := 30
END
`

func compileString(t *testing.T, src, out string) error {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "model.siml")
	if err := os.WriteFile(input, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	savedOutput := outputPath
	outputPath = filepath.Join(dir, out)
	defer func() { outputPath = savedOutput }()

	return runCompile([]string{input})
}

func TestRunCompileDecay(t *testing.T) {
	savedOutput := outputPath
	defer func() { outputPath = savedOutput }()

	dir := t.TempDir()
	input := filepath.Join(dir, "model.siml")
	if err := os.WriteFile(input, []byte(decaySource), 0o600); err != nil {
		t.Fatal(err)
	}
	outputPath = filepath.Join(dir, "model.py")

	if err := runCompile([]string{input}); err != nil {
		t.Fatalf("runCompile: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	py := string(data)
	for _, want := range []string{
		"class Batch(SimulatorBase):",
		"self.p_r1_d = float(r1_d)",
		"y_t[0] = -self.p_r1_d * v_r1_X",
		"self.simulationTime    = float(30)",
	} {
		if !strings.Contains(py, want) {
			t.Errorf("generated program misses %q", want)
		}
	}
}

func TestRunCompileReportsSemanticErrors(t *testing.T) {
	src := "PROCESS P\nPARAMETER\na; b\nSET\na := 1\nEND\n"
	err := compileString(t, src, "p.py")
	if !errors.Is(err, errCompileFailed) {
		t.Fatalf("runCompile = %v, want errCompileFailed", err)
	}
}

func TestRunCompileMissingInput(t *testing.T) {
	savedOutput := outputPath
	outputPath = filepath.Join(t.TempDir(), "x.py")
	defer func() { outputPath = savedOutput }()

	err := runCompile([]string{filepath.Join(t.TempDir(), "missing.siml")})
	if err == nil || errors.Is(err, errCompileFailed) {
		t.Fatalf("runCompile = %v, want a read error", err)
	}
}

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"bioreactor.siml", "bioreactor.py"},
		{filepath.Join("models", "tank.siml"), filepath.Join("models", "tank.py")},
		{"noextension", "noextension.py"},
		{"dotted.name.siml", "dotted.name.py"},
	}
	for _, tt := range tests {
		if got := deriveOutputPath(tt.input); got != tt.want {
			t.Errorf("deriveOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
