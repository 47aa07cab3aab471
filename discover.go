package twfold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/twfold/internal/engine"
)

// ScanStats tracks file discovery statistics.
type ScanStats struct {
	FilesDiscovered int `json:"files_discovered"` // Total files found by glob patterns
	FilesScanned    int `json:"files_scanned"`    // Files handed to a parsing strategy
	FilesSkipped    int `json:"files_skipped"`    // Files dropped by filtering
}

// target is one discovered file with its parsing strategy.
type target struct {
	path string
	kind engine.FileKind
}

// gitignore caching
var (
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// loadGitIgnore loads the .gitignore file once (thread-safe).
// Gracefully degrades if .gitignore doesn't exist.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile filters discovered files.
// Two-layer filtering: the run's own stylesheet output first, then
// .gitignore for relative paths (absolute paths like /tmp/... are not
// subject to the project gitignore).
func shouldSkipFile(path, output string) bool {
	if filepath.Clean(path) == filepath.Clean(output) {
		return true
	}
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}
	return false
}

// discoverFiles expands glob patterns, keeps files with a known parsing
// strategy and returns them sorted by path. The sorted order is what makes
// incremental numbering reproducible across runs.
func discoverFiles(patterns []string, output string) ([]target, ScanStats, error) {
	var targets []target
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			kind, ok := engine.KindForPath(match)
			if !ok || shouldSkipFile(match, output) {
				stats.FilesSkipped++
				continue
			}
			targets = append(targets, target{path: match, kind: kind})
			stats.FilesScanned++
		}
	}

	sort.Slice(targets, func(i, j int) bool { return targets[i].path < targets[j].path })
	return targets, stats, nil
}
