package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/madstone-tech/loko/internal/mcp"
	"github.com/madstone-tech/loko/internal/mcp/tools"
)

// docCache holds compiled narrative documents across MCP tool calls within
// one server process, so query_narrative can answer against the result of a
// prior compile_narrative call.
var docCache = mcp.NewDocCache()

// MCPCommand starts the MCP server exposing compile_narrative and
// query_narrative to an MCP client.
type MCPCommand struct {
	projectRoot string
}

// NewMCPCommand creates a new MCP command.
func NewMCPCommand(projectRoot string) *MCPCommand {
	return &MCPCommand{
		projectRoot: projectRoot,
	}
}

// Execute runs the MCP server.
func (c *MCPCommand) Execute(ctx context.Context) error {
	server := mcp.NewServer(c.projectRoot, os.Stdin, os.Stdout)

	if err := registerTools(server); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	// Signal to stderr that we're ready (empty line - MCP clients may check
	// for this). This allows Claude Code to detect that the server has
	// initialized.
	fmt.Fprintln(os.Stderr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.Run(ctx)
	}()

	select {
	case <-sigChan:
		return nil
	case err := <-serverErrChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// registerTools registers all MCP tools with the server.
func registerTools(server *mcp.Server) error {
	toolList := []mcp.Tool{
		tools.NewCompileNarrativeTool(docCache),
		tools.NewQueryNarrativeTool(docCache),
	}

	for _, tool := range toolList {
		if err := server.RegisterTool(tool); err != nil {
			return fmt.Errorf("failed to register tool %q: %w", tool.Name(), err)
		}
	}

	return nil
}
