package twfold

import (
	"fmt"
	"runtime"

	"github.com/yacobolo/twfold/internal/engine"
)

// DefaultOutput is the stylesheet path used when none is configured.
const DefaultOutput = "twfold.gen.css"

// DefaultPaths returns the glob patterns used when none are configured.
func DefaultPaths() []string {
	return []string{"**/*.html", "**/*.htm", "**/*.jsx", "**/*.tsx"}
}

// Config holds one run's settings.
type Config struct {
	Paths   []string // Glob patterns for source files
	Output  string   // Stylesheet destination path
	Mode    string   // Name generation mode: hash | incremental | readable
	Prefix  string   // Prepended verbatim to every short name
	DryRun  bool     // Compute plans and report, write nothing
	Minify  bool     // Route the stylesheet through the compressor
	Jobs    int      // Parallel workers (<= 0 means NumCPU)
	Verbose bool     // Enable debug logging
}

func (c *Config) applyDefaults() {
	if len(c.Paths) == 0 {
		c.Paths = DefaultPaths()
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Mode == "" {
		c.Mode = string(engine.ModeHash)
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
}

// Validate rejects configuration that would poison every later step.
// It runs before any file is touched; a failure here aborts the run.
func (c *Config) Validate() error {
	switch engine.Mode(c.Mode) {
	case engine.ModeHash, engine.ModeIncremental, engine.ModeReadable:
	default:
		return fmt.Errorf("invalid mode %q (want hash, incremental or readable)", c.Mode)
	}
	for _, r := range c.Prefix {
		valid := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' || r == '-' || r == '_'
		if !valid {
			return fmt.Errorf("invalid prefix %q: only letters, digits, '-' and '_' are allowed", c.Prefix)
		}
	}
	return nil
}
