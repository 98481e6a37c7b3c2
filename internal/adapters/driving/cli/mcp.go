package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/adcheck/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The keyword table is fetched once at startup. By default the server speaks
JSON-RPC over stdio; use --http to serve over HTTP instead.

Tools:
  highlight_document - annotate a base64 document, returns a base64 DOCX
  list_keywords      - list keywords and notes
  find_keywords      - locate keywords in raw text

Examples:
  # Stdio mode (default, for desktop assistants)
  adcheck mcp

  # HTTP mode (for MCP Inspector, remote access)
  adcheck mcp --http :8080

Desktop assistant configuration:
  {
    "mcpServers": {
      "adcheck": {
        "command": "/path/to/adcheck",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	_, review, err := loadReviewService(ctx)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Review: review})
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}
	return server.Run(ctx)
}
