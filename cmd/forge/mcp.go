// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfulp2020/forgefitness/internal/mcp"
	"github.com/mfulp2020/forgefitness/internal/storage"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets AI assistants like Claude generate programs and read your saved
templates through a standardized protocol. The server communicates via
stdin/stdout; logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "forge": {
        "command": "forge",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  generate_program    Generate a weekly program
  save_program        Generate a program and save its templates
  list_splits         List splits and day mappings
  verify_library      Check the knowledge base
  parse_prescription  Parse a sets/reps token
  normalize_exercise  Map a name onto the catalog
  list_templates      List saved templates
  get_template        Get a saved template

AVAILABLE RESOURCES:

  forge://splits            Every split with its day mappings
  forge://library/health    Library sizes and diagnostics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openDB()
		if err != nil {
			logger.Warn("template store unavailable, template tools disabled", "error", err)
		}

		var repo storage.Repository
		if store != nil {
			repo = store
		}
		server, err := mcp.NewServer(gen, repo, cfg.DefaultRequest(), logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
