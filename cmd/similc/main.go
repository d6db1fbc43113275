// Command similc compiles Siml sources - hierarchical models of ODE
// systems - into Python simulation programs.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/simlang/similc/internal/ast"
	"github.com/simlang/similc/internal/codegen"
	"github.com/simlang/similc/internal/config"
	"github.com/simlang/similc/internal/diag"
	"github.com/simlang/similc/internal/intermediate"
	"github.com/simlang/similc/internal/parser"
)

var (
	outputPath  string
	debugLevel  int
	noColor     bool
	watchMode   bool
	showVersion bool
)

// errCompileFailed signals that diagnostics were already printed; main
// only needs to set the exit code.
var errCompileFailed = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:   "similc [flags] <input file> ...",
	Short: "Compiler for the Siml differential equation language",
	Long: `similc compiles Siml sources into Python simulation programs.

Siml describes dynamical systems as hierarchical MODEL and PROCESS
blocks of parameters, variables and equations. Every PROCESS in the
input becomes one simulator class in the output file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersion()
			return nil
		}
		if len(args) == 0 {
			return errors.New("no input file(s)")
		}
		if err := config.Initialize(); err != nil {
			return err
		}
		if watchMode {
			return watchLoop(args)
		}
		return runCompile(args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: first input with .py extension)")
	rootCmd.Flags().CountVarP(&debugLevel, "debug", "d", "debug output; repeat for more")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "recompile whenever an input file changes")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCompileFailed) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		}
		os.Exit(1)
	}
}

// debugf prints stage progress to stderr when the debug level is at
// least level.
func debugf(level int, format string, args ...interface{}) {
	if debugLevel+config.GetInt(config.KeyDebug) >= level {
		fmt.Fprintf(os.Stderr, "similc: "+format+"\n", args...)
	}
}

// colorizeDiagnostics decides whether diagnostics are colored: not when
// asked to stay plain, and not when stderr is no terminal.
func colorizeDiagnostics() bool {
	if noColor || config.GetBool(config.KeyNoColor) {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// deriveOutputPath implements the default output name: the first input
// with its last extension replaced by ".py", placed in output-dir when
// one is configured.
func deriveOutputPath(firstInput string) string {
	base := strings.TrimSuffix(firstInput, filepath.Ext(firstInput)) + ".py"
	if dir := config.GetString(config.KeyOutputDir); dir != "" {
		return filepath.Join(dir, filepath.Base(base))
	}
	return base
}

// runCompile drives one full compilation: parse every input into one
// repository, build the intermediate model of every process, and emit
// the Python program. It returns errCompileFailed when any Error
// diagnostic was recorded.
func runCompile(inputs []string) error {
	sink := diag.NewSink()
	repo := ast.NewRepository()

	for _, input := range inputs {
		debugf(1, "parsing %s", input)
		src, err := os.ReadFile(input) // #nosec G304 -- input paths come from the command line
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		parser.Parse(string(src), input, repo, sink)
	}
	debugf(1, "parsed %d model(s), %d process(es)", len(repo.Models), len(repo.Processes))

	if len(repo.Processes) == 0 {
		sink.Warningf(diag.Span{}, "no PROCESS found; nothing to simulate")
	}

	var flatModels []*intermediate.Model
	for _, proc := range repo.Processes {
		debugf(1, "flattening process %s", proc.Name)
		flat := intermediate.Build(repo, proc, sink)
		if debugLevel+config.GetInt(config.KeyDebug) >= 2 {
			dumpModel(flat)
		}
		flatModels = append(flatModels, flat)
	}

	out := outputPath
	if out == "" {
		out = deriveOutputPath(inputs[0])
	}
	if err := writeProgram(out, flatModels, sink); err != nil {
		return err
	}

	sink.Fprint(os.Stderr, colorizeDiagnostics())
	if sink.HasErrors() {
		return errCompileFailed
	}
	return nil
}

// writeProgram emits all flat processes into one output file.
func writeProgram(path string, models []*intermediate.Model, sink *diag.Sink) error {
	debugf(1, "writing %s", path)
	f, err := os.Create(path) // #nosec G304 -- the output path is chosen by the user
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer f.Close()

	gen := codegen.NewPyGenerator(f, sink)
	gen.WriteFileHeader(Version)
	for _, m := range models {
		gen.GenProcess(m)
	}
	return nil
}

// dumpModel prints the flat model as YAML to stderr (debug level >= 2).
func dumpModel(m *intermediate.Model) {
	data, err := yaml.Marshal(m.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "similc: cannot dump model %s: %s\n", m.Name, err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "--- flat model %s ---\n%s", m.Name, data)
}
