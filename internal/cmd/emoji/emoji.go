// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants give checks, findings and notices one visual language.
const (
	// Success marks a completed check or a clean result.
	Success = "✓"

	// Error marks an error finding or a source that failed to load.
	Error = "✗"

	// Warning marks a warning finding or a highlighted row.
	Warning = "!"

	// Info marks an informational notice.
	Info = "i"

	// Pending marks a check still waiting for its inputs.
	Pending = "…"

	// Optional marks an empty cell.
	Optional = "-"
)
