package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/glslls/cmd/glslls/commands"
	"github.com/teranos/glslls/logger"
)

var rootCmd = &cobra.Command{
	Use:   "glslls",
	Short: "GLSL language server",
	Long: `glslls - a language server for OpenGL Shading Language source.

Provides completion, hover, go-to-definition, find-references, semantic
tokens, inlay hints, folding ranges, and diagnostics for .vert/.frag/
.comp/.geom/.tesc/.tese files and their #include trees.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonOutput); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json-logs", false, "emit structured JSON logs instead of human-readable console output")
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
