package commands

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/teranos/glslls/config"
	"github.com/teranos/glslls/internal/compiler"
	"github.com/teranos/glslls/internal/langserver"
	"github.com/teranos/glslls/internal/preprocessor"
	"github.com/teranos/glslls/logger"
)

var (
	serveWS      bool
	serveAddr    string
	serveWorkers int
	serveInclude []string
	serveUTF16   bool
)

// ServeCmd starts the language server, over stdio by default or over a
// WebSocket listener with --ws.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the language server",
	Long: `Start the GLSL language server.

By default glslls speaks LSP over stdio, the way an editor spawns it as a
subprocess. Pass --ws to instead listen for WebSocket connections on --addr,
for browser-based or remote tooling clients.`,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().BoolVar(&serveWS, "ws", false, "serve over WebSocket instead of stdio")
	ServeCmd.Flags().StringVar(&serveAddr, "addr", ":7658", "listen address when --ws is set")
	ServeCmd.Flags().IntVar(&serveWorkers, "workers", 0, "compilation worker pool size (0 = number of CPUs)")
	ServeCmd.Flags().StringArrayVar(&serveInclude, "include", nil, "additional #include search directory (repeatable)")
	ServeCmd.Flags().BoolVar(&serveUTF16, "utf16", true, "count character positions in UTF-16 code units (matches most LSP clients)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	inv := compiler.Invocation{
		IncludePaths:    append(serveInclude, cfg.IncludeDirs...),
		CountUTF16:      serveUTF16,
		Loader:          preprocessor.OSFileLoader{},
		ExpectedVersion: cfg.LanguageConfig.Version,
	}

	srv := langserver.NewServer(context.Background(), cfg.ToFeaturesConfig(), compiler.PreambleSource{}, inv, serveWorkers, logger.Logger)
	defer srv.Close()

	if !serveWS {
		logger.Logger.Infow("serving glslls over stdio")
		return srv.ServeStdio()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.ServeWebSocket)
	logger.Logger.Infow("serving glslls over websocket", "addr", serveAddr)
	return http.ListenAndServe(serveAddr, mux)
}
