package twfold

import (
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/yacobolo/twfold/internal/engine"
	"github.com/yacobolo/twfold/internal/logging"
)

// parseOutcome carries one file through the fan-in point between the
// parallel parse phase and the single-threaded name fold.
type parseOutcome struct {
	target
	content string
	occs    []engine.Occurrence
	err     error
}

// Run is the main entry point: discover, parse, fold names, rewrite, emit.
//
// Parsing and rewriting fan out across Jobs workers; occurrences are local
// to one file so the phases share no mutable state. The one synchronization
// point is the name fold, which walks the merged occurrences in sorted file
// order on a single goroutine. Per-file errors are captured in the result;
// only configuration errors and the stylesheet write abort the run.
func Run(config Config) (*Result, error) {
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := logging.Default()
	if config.Verbose {
		logging.SetLevel("debug")
	}

	targets, stats, err := discoverFiles(config.Paths, config.Output)
	if err != nil {
		return nil, fmt.Errorf("discover files: %w", err)
	}
	logger.Debug("discovered files",
		"found", stats.FilesDiscovered, "scanned", stats.FilesScanned, "skipped", stats.FilesSkipped)

	outcomes := parseAll(targets, config.Jobs)

	namer, err := engine.NewNamer(engine.Mode(config.Mode), config.Prefix)
	if err != nil {
		return nil, err
	}

	// Single-threaded fold over the union of safe class-strings. The
	// outcomes are in sorted path order, occurrences in document order,
	// so incremental numbering is reproducible across runs.
	for _, oc := range outcomes {
		if oc.err != nil {
			continue
		}
		for _, occ := range oc.occs {
			if !occ.Safe || namer.AlreadyGenerated(occ.Raw) {
				continue
			}
			namer.Generate(occ.Raw)
		}
	}
	logger.Debug("mapping built", "names", namer.Len())

	// Rewrite fan-out; the mapping is read-only from here on.
	result := &Result{
		Stats:  stats,
		Files:  rewriteAll(outcomes, namer, config),
		DryRun: config.DryRun,
	}
	for _, fr := range result.Files {
		result.Occurrences += len(fr.ClassStrings) + countDynamic(fr.Skipped)
		result.Replaced += fr.Replaced
		result.Skipped += len(fr.Skipped)
		if fr.Err != "" {
			result.ErrorCount++
		}
	}

	sheet := engine.BuildStylesheet(namer.Entries())
	if config.Minify {
		sheet, err = engine.MinifyStylesheet(sheet)
		if err != nil {
			return result, err
		}
	}
	if !config.DryRun {
		// There is only one stylesheet; failing to write it fails the run.
		if err := os.WriteFile(config.Output, []byte(sheet), 0o644); err != nil {
			return result, fmt.Errorf("write stylesheet %s: %w", config.Output, err)
		}
	}

	result.Stylesheet = config.Output
	result.Mapping = namer.Entries()
	result.Summary = engine.Summarize(namer.Entries())
	return result, nil
}

func countDynamic(skips []engine.Skip) int {
	n := 0
	for _, s := range skips {
		if s.Reason == engine.SkipDynamic {
			n++
		}
	}
	return n
}

// parseAll reads and parses every target on a worker pool and returns the
// outcomes in the targets' (sorted) order.
func parseAll(targets []target, jobs int) []parseOutcome {
	if len(targets) == 0 {
		return nil
	}
	if jobs > len(targets) {
		jobs = len(targets)
	}
	if jobs < 1 {
		jobs = 1
	}

	workCh := make(chan target)
	outCh := make(chan parseOutcome)

	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range workCh {
				outCh <- parseTarget(t)
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, t := range targets {
			workCh <- t
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; key by path and rebuild in the
	// deterministic target order.
	byPath := make(map[string]parseOutcome, len(targets))
	for oc := range outCh {
		byPath[oc.path] = oc
	}

	outcomes := make([]parseOutcome, 0, len(targets))
	for _, t := range targets {
		outcomes = append(outcomes, byPath[t.path])
	}
	return outcomes
}

func parseTarget(t target) parseOutcome {
	oc := parseOutcome{target: t}

	content, err := os.ReadFile(t.path)
	if err != nil {
		oc.err = fmt.Errorf("read %s: %w", t.path, err)
		return oc
	}
	oc.content = string(content)

	occs, err := engine.Parse(t.path, oc.content, t.kind)
	if err != nil {
		oc.err = err
		return oc
	}
	oc.occs = occs
	return oc
}

// rewriteAll rewrites every parsed file on a worker pool. Each worker owns
// disjoint slots of the result slice, so no locking is needed.
func rewriteAll(outcomes []parseOutcome, namer *engine.Namer, config Config) []FileResult {
	files := make([]FileResult, len(outcomes))
	if len(outcomes) == 0 {
		return files
	}

	jobs := config.Jobs
	if jobs > len(outcomes) {
		jobs = len(outcomes)
	}
	if jobs < 1 {
		jobs = 1
	}

	idxCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				files[i] = rewriteOne(outcomes[i], namer, config)
			}
		}()
	}
	for i := range outcomes {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	return files
}

func rewriteOne(oc parseOutcome, namer *engine.Namer, config Config) FileResult {
	fr := FileResult{Path: oc.path, Kind: oc.kind.String()}
	if oc.err != nil {
		fr.Err = oc.err.Error()
		return fr
	}

	for _, occ := range oc.occs {
		if occ.Safe {
			fr.ClassStrings = append(fr.ClassStrings, occ.Raw)
		}
	}

	res := engine.Rewrite(oc.content, oc.occs, namer)
	fr.Replaced = res.Replaced
	fr.Skipped = res.Skipped
	if !res.Changed {
		return fr
	}

	fr.Rewritten = true
	if config.DryRun {
		fr.Plan = res.Plan
		return fr
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(oc.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(oc.path, []byte(res.Text), mode); err != nil {
		fr.Err = fmt.Sprintf("write %s: %v", oc.path, err)
		fr.Rewritten = false
	}
	return fr
}
