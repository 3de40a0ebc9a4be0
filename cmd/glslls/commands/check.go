package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/glslls/config"
	"github.com/teranos/glslls/internal/compiler"
	"github.com/teranos/glslls/internal/diag"
	"github.com/teranos/glslls/internal/preprocessor"
)

var checkInclude []string

// CheckCmd compiles a single file outside of the LSP loop and prints
// its diagnostics, for CI pipelines and quick manual checks.
var CheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Compile a GLSL file and print its diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	CheckCmd.Flags().StringArrayVar(&checkInclude, "include", nil, "additional #include search directory (repeatable)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inv := compiler.Invocation{
		IncludePaths:    append(checkInclude, cfg.IncludeDirs...),
		Loader:          preprocessor.OSFileLoader{},
		ExpectedVersion: cfg.LanguageConfig.Version,
	}
	inv.IncludePaths = append(inv.IncludePaths, filepath.Dir(path))

	c := compiler.New()
	res := c.Compile(inv, compiler.PreambleSource{}, path, string(text))

	messages := res.Diagnostics.All()
	if len(messages) == 0 {
		pterm.Success.Printfln("%s: no diagnostics", path)
		return nil
	}

	errCount := 0
	for _, m := range messages {
		printDiagnostic(path, m)
		if m.Severity == diag.Error || m.Severity == diag.Fatal {
			errCount++
		}
	}

	if errCount > 0 {
		pterm.Error.Printfln("%s: %d error(s), %d diagnostic(s) total", path, errCount, len(messages))
		os.Exit(1)
	}
	pterm.Warning.Printfln("%s: %d diagnostic(s)", path, len(messages))
	return nil
}

func printDiagnostic(path string, m diag.Message) {
	loc := fmt.Sprintf("%s:%s", path, m.Range.Start)
	switch m.Severity {
	case diag.Fatal, diag.Error:
		pterm.Printf("%s %s [%s] %s\n", pterm.Red(loc), pterm.Red("error"), m.Code, m.Text)
	case diag.Warning:
		pterm.Printf("%s %s [%s] %s\n", pterm.Yellow(loc), pterm.Yellow("warning"), m.Code, m.Text)
	case diag.Info:
		pterm.Printf("%s %s [%s] %s\n", pterm.LightCyan(loc), pterm.LightCyan("info"), m.Code, m.Text)
	default:
		pterm.Printf("%s %s [%s] %s\n", pterm.Gray(loc), pterm.Gray("hint"), m.Code, m.Text)
	}
}
