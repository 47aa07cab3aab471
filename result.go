package twfold

import "github.com/yacobolo/twfold/internal/engine"

// FileResult is the outcome of parsing and rewriting one file. Per-file
// failures land in Err and never abort the rest of the run.
type FileResult struct {
	Path         string               `json:"path"`
	Kind         string               `json:"kind"`
	ClassStrings []string             `json:"class_strings,omitempty"` // safe occurrences, document order
	Replaced     int                  `json:"replaced"`
	Plan         []engine.Replacement `json:"plan,omitempty"`
	Skipped      []engine.Skip        `json:"skipped,omitempty"`
	Rewritten    bool                 `json:"rewritten"` // in dry-run: would be rewritten
	Err          string               `json:"error,omitempty"`
}

// Result aggregates a whole run.
type Result struct {
	Stats       ScanStats          `json:"stats"`
	Files       []FileResult       `json:"files"`
	Mapping     []engine.MapEntry  `json:"mapping"`
	Summary     engine.EmitSummary `json:"summary"`
	Occurrences int                `json:"occurrences"`
	Replaced    int                `json:"replaced"`
	Skipped     int                `json:"skipped"`
	ErrorCount  int                `json:"error_count"`
	Stylesheet  string             `json:"stylesheet"`
	DryRun      bool               `json:"dry_run"`
}
