package cmd

import (
	"context"
	"fmt"

	"github.com/madstone-tech/loko/internal/adapters/logging"
	"github.com/madstone-tech/loko/internal/core/content"
	"github.com/madstone-tech/loko/internal/core/introspect"
	"github.com/madstone-tech/loko/internal/core/locate"
	"github.com/madstone-tech/loko/internal/core/memo"
)

// QueryCommand compiles a project and answers a single introspection query
// against the result, without going through the MCP server. It exercises
// the same introspect.Selector/memo.Constraint path as query_narrative so
// the compiler's query surface is drivable from a terminal, not only from
// an MCP client.
type QueryCommand struct {
	projectRoot string
	op          string
	kind        string
	label       string
	location    string
}

// NewQueryCommand creates a new query command.
func NewQueryCommand(projectRoot, op, kind, label, location string) *QueryCommand {
	if op == "" {
		op = "list"
	}
	return &QueryCommand{
		projectRoot: projectRoot,
		op:          op,
		kind:        kind,
		label:       label,
		location:    location,
	}
}

// Execute runs the query command.
func (c *QueryCommand) Execute(ctx context.Context) error {
	logger := logging.New(logging.LevelInfo)

	doc, _, err := runCompile(ctx, c.projectRoot, logger)
	if err != nil {
		return err
	}

	ix := introspect.Build(doc.Pages)
	sel := introspect.Selector{Kind: content.Kind(c.kind), Label: c.label}
	constraint := memo.NewConstraint()

	switch c.op {
	case "list":
		nodes := ix.Query(sel, constraint)
		fmt.Printf("%d element(s):\n", len(nodes))
		for _, n := range nodes {
			fmt.Printf("  [%s] %s: %s\n", n.Kind, n.Label, n.Text)
		}
		return nil

	case "location":
		loc, err := ix.Location(sel, constraint)
		if err != nil {
			return fmt.Errorf("location: %w", err)
		}
		fmt.Println(loc.String())
		return nil

	case "page", "count_before", "count_after":
		loc, ok := locate.ParseLocation(c.location)
		if !ok {
			return fmt.Errorf("invalid or missing --location %q", c.location)
		}
		switch c.op {
		case "page":
			page, err := ix.Page(loc, constraint)
			if err != nil {
				return fmt.Errorf("page: %w", err)
			}
			fmt.Println(page)
		case "count_before":
			fmt.Println(ix.CountBefore(sel, loc, constraint))
		case "count_after":
			fmt.Println(ix.CountAfter(sel, loc, constraint))
		}
		return nil

	default:
		return fmt.Errorf("unknown op %q (want list, location, page, count_before, count_after)", c.op)
	}
}
