package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/madstone-tech/loko/internal/adapters/cli"
	"github.com/madstone-tech/loko/internal/adapters/logging"
	"github.com/madstone-tech/loko/internal/adapters/worldfs"
	"github.com/madstone-tech/loko/internal/core/compile"
	"github.com/madstone-tech/loko/internal/core/diag"
	"github.com/madstone-tech/loko/internal/core/layout"
)

// narrativeEntryPoint is the conventional name of a project's entry
// document: prose that references elements by label (e.g. "see the API
// Gateway container on page {{page-of:api-gateway}}") and is laid out by
// the fixpoint compiler in internal/core/compile.
const narrativeEntryPoint = "main.md"

// CompileCommand drives core/compile.Compile against a project's
// narrativeEntryPoint. It is the primary, directly drivable entry point
// onto the document compiler — the product this repository builds.
type CompileCommand struct {
	projectRoot string
}

// NewCompileCommand creates a new compile command.
func NewCompileCommand(projectRoot string) *CompileCommand {
	return &CompileCommand{projectRoot: projectRoot}
}

// Execute compiles the project's main.md and prints a build report.
func (c *CompileCommand) Execute(ctx context.Context) error {
	logger := logging.New(logging.LevelInfo)
	start := time.Now()

	doc, tracer, err := runCompile(ctx, c.projectRoot, logger)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}

	formatter := cli.NewReportFormatter()
	formatter.PrintDiagnostics(tracer.Warnings())
	formatter.PrintBuildReport(cli.BuildStats{
		Pages:       len(doc.Pages),
		Diagnostics: len(tracer.Warnings()),
		Duration:    elapsed,
	})

	return nil
}

// runCompile constructs a worldfs.World rooted at projectRoot and runs
// core/compile.Compile over its narrativeEntryPoint. It is shared by
// CompileCommand, WatchCommand, and QueryCommand so every caller exercises
// the exact same compilation path.
func runCompile(ctx context.Context, projectRoot string, logger *logging.Logger) (*layout.Document, *diag.Tracer, error) {
	w := worldfs.New(projectRoot, narrativeEntryPoint)
	tracer := diag.NewTracer()

	doc, err := compile.Compile(ctx, w, tracer)
	logging.LogDiagnostics(logger, tracer.Warnings(), err)
	if err != nil {
		return nil, tracer, fmt.Errorf("compile failed: %w", err)
	}

	return doc, tracer, nil
}
