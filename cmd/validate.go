package cmd

import (
	"context"
	"fmt"

	"github.com/madstone-tech/loko/internal/adapters/cli"
	"github.com/madstone-tech/loko/internal/adapters/logging"
)

// ValidateCommand compiles the project and reports diagnostics without
// writing output. It returns an error when compilation fails, and for
// warnings only when both strict and exitCode are set.
type ValidateCommand struct {
	projectRoot string
	strict      bool
	exitCode    bool
}

// NewValidateCommand creates a new validate command.
func NewValidateCommand(projectRoot string, strict, exitCode bool) *ValidateCommand {
	return &ValidateCommand{
		projectRoot: projectRoot,
		strict:      strict,
		exitCode:    exitCode,
	}
}

// Execute runs the validate command.
func (c *ValidateCommand) Execute(ctx context.Context) error {
	logger := logging.New(logging.LevelInfo)

	doc, tracer, err := runCompile(ctx, c.projectRoot, logger)
	if err != nil {
		formatter := cli.NewReportFormatter()
		formatter.PrintDiagnostics(tracer.Warnings())
		return err
	}

	// A non-nil err above already means compile failed outright (e.g. an
	// error delayed during layout survived to the fixpoint); reaching here
	// means only warnings, if any, remain.
	warnings := tracer.Warnings()
	formatter := cli.NewReportFormatter()
	formatter.PrintDiagnostics(warnings)

	fmt.Printf("\n✓ Compiled %d page(s)\n", len(doc.Pages))

	if c.strict && len(warnings) > 0 {
		fmt.Println("⚠  Strict mode: treating warnings as errors")
		if c.exitCode {
			return fmt.Errorf("validation failed with %d warning(s) (strict mode)", len(warnings))
		}
		fmt.Println("⚠  Note: use --exit-code to exit with non-zero status")
	}

	return nil
}
