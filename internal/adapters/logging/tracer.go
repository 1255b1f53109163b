package logging

import "github.com/madstone-tech/loko/internal/core/diag"

// LogDiagnostics writes every warning and, if err wraps a fatal
// diag.SourceDiagnostic, the fatal error itself through l, so compile-time
// diagnostics flow through the same JSON-to-stderr logger the CLI and MCP
// surfaces already use for everything else.
func LogDiagnostics(l *Logger, warnings []diag.SourceDiagnostic, err error) {
	for _, w := range warnings {
		fields := []any{"severity", string(w.Severity)}
		if w.Span.FileID != "" {
			fields = append(fields, "file", w.Span.FileID, "start", w.Span.Start, "end", w.Span.End)
		}
		if w.Hint != "" {
			fields = append(fields, "hint", w.Hint)
		}
		l.Warn(w.Message, fields...)
	}
	if err != nil {
		l.Error("compilation failed", err)
	}
}
