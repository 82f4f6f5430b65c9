package lint_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/bindery"
	"github.com/aretw0/bindery/pkg/lint"
	_ "github.com/aretw0/bindery/pkg/lint/rules/all"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeDoc drops a raw markdown file into the corpus, bypassing the
// repository so parsing happens through the normal read path.
func writeDoc(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestLint_FullCorpus(t *testing.T) {
	tmp := t.TempDir()

	writeDoc(t, tmp, "tenets/simplicity.md", `---
id: simplicity
version: 0.1.0
last_modified: "2026-08-29"
---
# Tenet: Simplicity

Prefer the simplest design that works.
`)

	writeDoc(t, tmp, "go/error-wrapping.md", `---
id: error-wrapping
version: 0.1.0
derived_from: simplicity
enforced_by: code review
last_modified: "2026-08-29"
---
# Binding: Error Wrapping

Wrap errors with %w.

## Related Bindings

- [Sentinel Errors](sentinel-errors.md): prefer sentinels for fixed failures
`)

	// Broken on several axes: missing keys, bad version, dangling link.
	writeDoc(t, tmp, "go/sentinel-errors.md", `---
id: sentinel-errors
version: one-point-oh
derived_from: nonexistent-tenet
---
# Binding: Sentinel Errors

Body.

## Related Bindings

- [Gone](gone.md)
`)

	repo, err := bindery.Init(tmp, bindery.WithReadOnly(true))
	require.NoError(t, err)

	report, err := lint.RunRepository(context.Background(), repo, lint.Options{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Checked)

	rules := make(map[string]int)
	for _, f := range report.Findings {
		rules[f.Rule]++
	}

	assert.Equal(t, 1, rules["FM01"], "sentinel-errors misses enforced_by and last_modified")
	assert.Equal(t, 1, rules["FM03"], "sentinel-errors has a bad version")
	assert.Equal(t, 1, rules["RF01"], "gone.md does not resolve")
	assert.Equal(t, 1, rules["RF02"], "nonexistent-tenet is unknown")
	assert.Zero(t, rules["RF03"], "ids are unique")

	// The healthy documents stay clean.
	for _, f := range report.Findings {
		assert.NotEqual(t, "tenets/simplicity", f.DocID, "tenet should be clean: %+v", f)
		assert.NotEqual(t, "go/error-wrapping", f.DocID, "error-wrapping should be clean: %+v", f)
	}

	assert.True(t, report.Failed(lint.SeverityError))
}

func TestLint_ConfiguredCorpusIsClean(t *testing.T) {
	tmp := t.TempDir()

	writeDoc(t, tmp, "tenets/simplicity.md", `---
id: simplicity
version: 0.1.0
last_modified: "2026-08-29"
---
# Tenet: Simplicity

Prose.
`)

	// The config file sits at the corpus root with a supported extension;
	// it must not be linted as a document.
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "bindery.yaml"),
		[]byte("lint:\n  fail_on: error\n"), 0644))

	repo, err := bindery.Init(tmp, bindery.WithReadOnly(true))
	require.NoError(t, err)

	report, err := lint.RunRepository(context.Background(), repo, lint.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Checked)
	assert.Empty(t, report.Findings)
	assert.False(t, report.Failed(lint.SeverityError))
}

func TestLint_IncludeScopesFindingsNotContext(t *testing.T) {
	tmp := t.TempDir()

	writeDoc(t, tmp, "tenets/simplicity.md", `---
id: simplicity
version: 0.1.0
last_modified: "2026-08-29"
---
# Tenet: Simplicity

Prose.
`)
	writeDoc(t, tmp, "go/a.md", `---
id: a
version: 0.1.0
derived_from: simplicity
enforced_by: review
last_modified: "2026-08-29"
---
# Binding: A

Prose.
`)

	repo, err := bindery.Init(tmp, bindery.WithReadOnly(true))
	require.NoError(t, err)

	// Including only go/** must not break RF02: the tenet is outside the
	// include set but still part of the reference context.
	report, err := lint.RunRepository(context.Background(), repo, lint.Options{
		Include: []string{"go/**"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Checked)
	for _, f := range report.Findings {
		assert.NotEqual(t, "RF02", f.Rule, "tenet outside include set must still resolve")
	}
}
