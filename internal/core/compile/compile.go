// Package compile drives a single compilation from a World to a finished
// layout.Document: the evaluate/layout/introspect fixpoint loop that the
// rest of the compiler core (content, style, meta, layout, locate,
// introspect, memo, diag) was built to support.
//
// Grounded on cmd/build.go's BuildCommand.Execute (load inputs, run the
// pipeline, report progress/errors) and internal/mcp/graph_cache.go's
// RWMutex-guarded cache shape, generalized from "cache one architecture
// graph per project root" to "cache parsed blocks across layout attempts
// within one compilation".
package compile

import (
	"context"
	"fmt"

	"github.com/madstone-tech/loko/internal/core/diag"
	"github.com/madstone-tech/loko/internal/core/introspect"
	"github.com/madstone-tech/loko/internal/core/layout"
	"github.com/madstone-tech/loko/internal/core/locate"
	"github.com/madstone-tech/loko/internal/core/memo"
	"github.com/madstone-tech/loko/internal/core/world"
)

// maxIterations caps the layout fixpoint loop. If content never stabilizes
// within this many attempts, Compile proceeds with the last attempt's
// output and records a warning rather than failing outright (SPEC_FULL.md
// §9, following the original compiler's own behavior).
const maxIterations = 5

// Compile drives one compilation of w's main Source to a laid-out Document.
// Each iteration evaluates the source against the previous iteration's
// Introspector, lays out the result, and builds a fresh Introspector; the
// loop stops once the Constraint recorded during evaluation validates
// against that fresh Introspector, or after maxIterations attempts.
func Compile(ctx context.Context, w world.World, tracer *diag.Tracer) (*layout.Document, error) {
	src, err := w.Main()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	parseCache := memo.NewCache()
	var doc *layout.Document
	// The first attempt runs against an empty Introspector, so every query
	// it makes is recorded and checked against the first real layout.
	prevIx := introspect.Build(nil)

	for i := 0; i < maxIterations; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		tracer.ClearDelayed()
		constraint := memo.NewConstraint()
		locator := locate.NewLocator()

		tree := evaluate(src.Text, parseCache, prevIx, constraint)
		doc = paginate(tree, locator)
		ix := introspect.Build(doc.Pages)

		converged := constraint.Validate(ix)
		prevIx = ix
		if converged {
			break
		}

		if i == maxIterations-1 {
			tracer.Warn(diag.Warning(diag.Detached(), fmt.Sprintf("layout did not converge within %d attempts", maxIterations)).
				WithHint("check whether any states or queries update themselves"))
		}
	}

	if delayed := tracer.TakeDelayed(); len(delayed) > 0 {
		return nil, fmt.Errorf("compile: %w", delayed[0])
	}

	return doc.StripHidden(), nil
}
