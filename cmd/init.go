package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/madstone-tech/loko/internal/adapters/config"
)

var projectNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

const starterMain = `# %s

%s

This is a narrative document. It is laid out by the compiler's layout
fixpoint; cross-references like {{page-of:intro}} are resolved once layout
converges.

## Introduction {#intro}

Start writing here.
`

// InitCommand scaffolds a new loko document-compiler project: a project
// directory containing a starter main.md and a loko.toml.
type InitCommand struct {
	projectName string
	projectPath string
	description string
}

// NewInitCommand creates a new init command.
func NewInitCommand(projectName string) *InitCommand {
	return &InitCommand{
		projectName: projectName,
		projectPath: projectName,
	}
}

// WithDescription sets the project description.
func (ic *InitCommand) WithDescription(desc string) *InitCommand {
	ic.description = desc
	return ic
}

// WithPath sets the project path.
func (ic *InitCommand) WithPath(path string) *InitCommand {
	ic.projectPath = path
	return ic
}

// Execute runs the init command, creating the project directory,
// a starter main.md, and a loko.toml.
func (ic *InitCommand) Execute(ctx context.Context) error {
	if ic.projectName == "" {
		return fmt.Errorf("project name is required")
	}
	if !projectNamePattern.MatchString(ic.projectName) {
		return fmt.Errorf("invalid project name %q: must start with a letter and contain only letters, digits, - or _", ic.projectName)
	}

	absPath, err := filepath.Abs(ic.projectPath)
	if err != nil {
		return fmt.Errorf("failed to resolve project path: %w", err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	description := ic.description
	if description == "" {
		description = fmt.Sprintf("The %s narrative.", ic.projectName)
	}

	mainPath := filepath.Join(absPath, "main.md")
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		content := fmt.Sprintf(starterMain, ic.projectName, description)
		if err := os.WriteFile(mainPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write main.md: %w", err)
		}
	}

	loader := config.NewLoader()
	if err := loader.SaveConfig(ctx, absPath, config.DefaultConfig()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
