package twfold

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunHashMode(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", `<div class="flex items-center p-4">hi</div>`)
	output := filepath.Join(dir, "twfold.gen.css")

	result, err := Run(Config{
		Paths:  []string{filepath.Join(dir, "*.html")},
		Output: output,
		Mode:   "hash",
		Prefix: "tw-",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesScanned)
	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, 0, result.ErrorCount)

	rewritten := readFile(t, page)
	re := regexp.MustCompile(`class="(tw-[0-9a-f]{6})"`)
	match := re.FindStringSubmatch(rewritten)
	require.NotNil(t, match, "attribute should hold a short hash name, got: %s", rewritten)

	sheet := readFile(t, output)
	assert.Contains(t, sheet, "."+match[1]+" { @apply flex items-center p-4; }")
}

func TestRunIncrementalAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	// Stable merge order is by file path: a.html numbers before b.html.
	a := writeFile(t, dir, "a.html", `<div class="p-4 flex">a</div>`)
	b := writeFile(t, dir, "b.html", `<div class="p-4 flex">b</div>`)
	output := filepath.Join(dir, "out.css")

	result, err := Run(Config{
		Paths:  []string{filepath.Join(dir, "*.html")},
		Output: output,
		Mode:   "incremental",
		Prefix: "tw-",
	})
	require.NoError(t, err)

	assert.Contains(t, readFile(t, a), `class="tw-0"`)
	assert.Contains(t, readFile(t, b), `class="tw-0"`)
	assert.Equal(t, 2, result.Replaced)

	// Exactly one rule for the shared class-string.
	sheet := readFile(t, output)
	assert.Equal(t, ".tw-0 { @apply p-4 flex; }\n", sheet)
	assert.Equal(t, 1, result.Summary.Rules)
}

func TestRunSkipsDynamicExpressions(t *testing.T) {
	dir := t.TempDir()
	comp := writeFile(t, dir, "app.tsx",
		`const C = () => <div className={computeClass()}><p className="a b">x</p></div>;`)
	output := filepath.Join(dir, "out.css")

	result, err := Run(Config{
		Paths:  []string{filepath.Join(dir, "*.tsx")},
		Output: output,
		Mode:   "hash",
		Prefix: "tw-",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, 1, result.Skipped)
	assert.Contains(t, readFile(t, comp), "{computeClass()}")
}

func TestRunDryRun(t *testing.T) {
	dir := t.TempDir()
	static := `<div class="flex p-4">x</div>`
	dynamic := `const C = () => <div className={v}>x</div>;`
	staticPath := writeFile(t, dir, "a.html", static)
	dynamicPath := writeFile(t, dir, "b.jsx", dynamic)
	output := filepath.Join(dir, "out.css")

	result, err := Run(Config{
		Paths:  []string{filepath.Join(dir, "*")},
		Output: output,
		Mode:   "hash",
		Prefix: "tw-",
		DryRun: true,
	})
	require.NoError(t, err)

	// Nothing on disk changes.
	assert.Equal(t, static, readFile(t, staticPath))
	assert.Equal(t, dynamic, readFile(t, dynamicPath))
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "stylesheet must not be written in dry-run")

	// The plan still reports one replacement and one skip.
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Replaced)
	assert.Equal(t, 1, result.Skipped)

	var plans int
	for _, fr := range result.Files {
		plans += len(fr.Plan)
	}
	assert.Equal(t, 1, plans)
}

func TestRunSecondPassIsStable(t *testing.T) {
	dir := t.TempDir()
	page := writeFile(t, dir, "page.html", `<div class="flex p-4"><span class="grid gap-2">x</span></div>`)
	output := filepath.Join(dir, "out.css")

	config := Config{
		Paths:  []string{filepath.Join(dir, "*.html")},
		Output: output,
		Mode:   "hash",
		Prefix: "tw-",
	}

	_, err := Run(config)
	require.NoError(t, err)
	first := readFile(t, page)

	result, err := Run(config)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, page), "second run must not double-rewrite")
	assert.Equal(t, 0, result.Replaced)
}

func TestRunReorderedTokensShareOneRule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.html", `<div class="flex p-4">a</div>`)
	writeFile(t, dir, "b.html", `<div class="p-4 flex">b</div>`)
	output := filepath.Join(dir, "out.css")

	result, err := Run(Config{
		Paths:  []string{filepath.Join(dir, "*.html")},
		Output: output,
		Mode:   "hash",
		Prefix: "tw-",
	})
	require.NoError(t, err)

	// Distinct strings, distinct names; one canonical rule survives.
	require.Len(t, result.Mapping, 2)
	assert.NotEqual(t, result.Mapping[0].Name, result.Mapping[1].Name)
	assert.Equal(t, 2, result.Summary.Mappings)
	assert.Equal(t, 1, result.Summary.Rules)
}

func TestRunUnreadableFileIsIsolated(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.html", `<div class="a">x</div>`)
	writeFile(t, dir, "good.html", `<div class="flex">x</div>`)
	require.NoError(t, os.Chmod(bad, 0o000))
	output := filepath.Join(dir, "out.css")

	result, err := Run(Config{
		Paths:  []string{filepath.Join(dir, "*.html")},
		Output: output,
		Mode:   "hash",
		Prefix: "tw-",
	})
	require.NoError(t, err, "a per-file read failure must not abort the run")

	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, 1, result.Replaced)
	assert.FileExists(t, output)
}

func TestRunInvalidConfig(t *testing.T) {
	_, err := Run(Config{Mode: "alphabetical"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{name: "hash ok", config: Config{Mode: "hash", Prefix: "tw-"}},
		{name: "incremental ok", config: Config{Mode: "incremental"}},
		{name: "readable ok", config: Config{Mode: "readable", Prefix: "u_"}},
		{name: "empty prefix ok", config: Config{Mode: "hash"}},
		{name: "bad mode", config: Config{Mode: "random"}, wantErr: "invalid mode"},
		{name: "bad prefix", config: Config{Mode: "hash", Prefix: "tw "}, wantErr: "invalid prefix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
