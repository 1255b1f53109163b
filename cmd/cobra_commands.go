package cmd

import (
	"github.com/spf13/cobra"
)

// This file wires each Command struct (CompileCommand, WatchCommand, ...) as
// a Cobra subcommand of rootCmd. The Command structs remain the actual
// execution logic — Cobra only owns flag parsing and help text, the same
// division the teacher's cmd/root.go established between rootCmd and its
// subcommands.

func init() {
	rootCmd.AddCommand(initCobraCmd())
	rootCmd.AddCommand(compileCobraCmd())
	rootCmd.AddCommand(watchCobraCmd())
	rootCmd.AddCommand(validateCobraCmd())
	rootCmd.AddCommand(queryCobraCmd())
	rootCmd.AddCommand(mcpCobraCmd())
}

func initCobraCmd() *cobra.Command {
	var description, path string

	c := &cobra.Command{
		Use:     "init <project-name>",
		Short:   "Initialize a new project (main.md + loko.toml)",
		GroupID: "scaffolding",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectName := args[0]
			ic := NewInitCommand(projectName)
			if description != "" {
				ic.WithDescription(description)
			}
			if path != "" {
				ic.WithPath(path)
			}
			if err := ic.Execute(cmd.Context()); err != nil {
				return err
			}
			location := projectName
			if path != "" {
				location = path
			}
			cmd.Printf("✓ Project '%s' initialized at %s\n", projectName, location)
			return nil
		},
	}

	c.Flags().StringVar(&description, "description", "", "Project description")
	c.Flags().StringVar(&path, "path", "", "Project path (defaults to project name)")
	return c
}

func compileCobraCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "compile",
		Short:   "Compile main.md and print a build report",
		GroupID: "compiling",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewCompileCommand(ProjectRoot).Execute(cmd.Context())
		},
	}
}

func watchCobraCmd() *cobra.Command {
	var debounce int

	c := &cobra.Command{
		Use:     "watch",
		Short:   "Watch for changes and recompile automatically",
		GroupID: "compiling",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wc := NewWatchCommand(ProjectRoot)
			if debounce != 500 {
				wc.WithDebounce(debounce)
			}
			return wc.Execute(cmd.Context())
		},
	}

	c.Flags().IntVar(&debounce, "debounce", 500, "Debounce delay in milliseconds")
	return c
}

func validateCobraCmd() *cobra.Command {
	var strict, exitCode bool

	c := &cobra.Command{
		Use:     "validate",
		Short:   "Compile and report diagnostics without writing output",
		GroupID: "compiling",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewValidateCommand(ProjectRoot, strict, exitCode).Execute(cmd.Context())
		},
	}

	c.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	c.Flags().BoolVar(&exitCode, "exit-code", false, "Exit with non-zero status when validation fails")
	return c
}

func queryCobraCmd() *cobra.Command {
	var op, kind, label, location string

	c := &cobra.Command{
		Use:     "query",
		Short:   "List or resolve elements in the compiled document",
		GroupID: "introspection",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewQueryCommand(ProjectRoot, op, kind, label, location).Execute(cmd.Context())
		},
	}

	c.Flags().StringVar(&op, "op", "list", "Query operation: list, location, page, count_before, count_after")
	c.Flags().StringVar(&kind, "kind", "", "Filter by content kind; empty matches any")
	c.Flags().StringVar(&label, "label", "", "Filter by explicit label; empty matches any")
	c.Flags().StringVar(&location, "location", "", "A loc:... string, required for page/count_before/count_after")
	return c
}

func mcpCobraCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mcp",
		Short:   "Start the MCP server (compile_narrative, query_narrative)",
		GroupID: "introspection",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewMCPCommand(ProjectRoot).Execute(cmd.Context())
		},
	}
}
