package source

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calumari/skuquery"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

var wantSample = skuquery.Collection{
	skuquery.Document{
		{Key: "skuName", Value: "X"},
		{Key: "product", Value: "P"},
		{Key: "licenseAttributes", Value: skuquery.Document{
			{Key: "Description", Value: "d"},
			{Key: "TranscriptsProvisioned", Value: true},
		}},
	},
}

func TestLoad_JSON(t *testing.T) {
	t.Run("binding decoded in order", func(t *testing.T) {
		path := writeFile(t, "skus.json", `{"version": 2, "skus": [
			{"skuName": "X", "product": "P", "licenseAttributes": {"Description": "d", "TranscriptsProvisioned": true}}
		]}`)
		got, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, wantSample, got)
	})

	t.Run("unknown extension treated as JSON", func(t *testing.T) {
		path := writeFile(t, "skus.data", `{"skus": []}`)
		got, err := Load(path)
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("custom binding", func(t *testing.T) {
		path := writeFile(t, "skus.json", `{"catalog": [{"skuName": "A"}]}`)
		got, err := Load(path, WithBinding("catalog"))
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("invalid JSON is a load error", func(t *testing.T) {
		path := writeFile(t, "skus.json", `{"skus": [}`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrLoad)
	})

	t.Run("missing binding is a schema error", func(t *testing.T) {
		path := writeFile(t, "skus.json", `{"items": []}`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrSchema)
		assert.Contains(t, err.Error(), `did not define "skus" variable`)
	})

	t.Run("top-level array is a schema error", func(t *testing.T) {
		path := writeFile(t, "skus.json", `[{"skuName": "X"}]`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrSchema)
		assert.Contains(t, err.Error(), "top level is an array")
	})

	t.Run("binding to non-array is a schema error", func(t *testing.T) {
		path := writeFile(t, "skus.json", `{"skus": {"skuName": "X"}}`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrSchema)
		var se *SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "skus", se.Binding)
		assert.Contains(t, se.Reason, "a mapping")
	})
}

func TestLoad_YAML(t *testing.T) {
	t.Run("same collection as JSON", func(t *testing.T) {
		path := writeFile(t, "skus.yaml", `
skus:
  - skuName: X
    product: P
    licenseAttributes:
      Description: d
      TranscriptsProvisioned: true
`)
		got, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, wantSample, got)
	})

	t.Run("scalars aliases and arrays", func(t *testing.T) {
		path := writeFile(t, "skus.yml", `
defaults: &attrs
  seats: 5
  ratio: 1.5
  note: ~
skus:
  - skuName: A
    licenseAttributes: *attrs
    tags: [a, b]
    since: 2024-01-02
`)
		got, err := Load(path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		rec := got[0].(skuquery.Document)

		attrs, ok := rec.Get("licenseAttributes")
		require.True(t, ok)
		assert.Equal(t, skuquery.Document{
			{Key: "seats", Value: 5},
			{Key: "ratio", Value: 1.5},
			{Key: "note", Value: nil},
		}, attrs)

		tags, _ := rec.Get("tags")
		assert.Equal(t, skuquery.Array{"a", "b"}, tags)

		since, _ := rec.Get("since")
		assert.Equal(t, "2024-01-02", since)
	})

	t.Run("forced format overrides extension", func(t *testing.T) {
		path := writeFile(t, "skus.txt", "skus: []\n")
		got, err := Load(path, WithFormat(FormatYAML))
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("invalid YAML is a load error", func(t *testing.T) {
		path := writeFile(t, "skus.yaml", "skus: [\n")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrLoad)
	})

	t.Run("self-referencing alias is a load error", func(t *testing.T) {
		path := writeFile(t, "skus.yaml", "skus: &a\n  - x: *a\n")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrLoad)
		assert.Contains(t, err.Error(), "alias *a refers to an enclosing node")
	})

	t.Run("shared alias expands at every use", func(t *testing.T) {
		path := writeFile(t, "skus.yaml", `
base: &base {seats: 1}
skus:
  - {skuName: A, licenseAttributes: *base}
  - {skuName: B, licenseAttributes: *base}
`)
		got, err := Load(path)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, rec := range got {
			attrs, _ := rec.(skuquery.Document).Get("licenseAttributes")
			assert.Equal(t, skuquery.Document{{Key: "seats", Value: 1}}, attrs)
		}
	})

	t.Run("alias fan-out is capped", func(t *testing.T) {
		defer func(n int) { maxYAMLNodes = n }(maxYAMLNodes)
		maxYAMLNodes = 10_000

		path := writeFile(t, "skus.yaml", `
a: &a [x, x, x, x, x, x, x, x, x, x]
b: &b [*a, *a, *a, *a, *a, *a, *a, *a, *a, *a]
c: &c [*b, *b, *b, *b, *b, *b, *b, *b, *b, *b]
d: &d [*c, *c, *c, *c, *c, *c, *c, *c, *c, *c]
e: &e [*d, *d, *d, *d, *d, *d, *d, *d, *d, *d]
skus: [*e]
`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrLoad)
		assert.Contains(t, err.Error(), "too large after alias expansion")
	})

	t.Run("duplicate mapping key is a load error", func(t *testing.T) {
		path := writeFile(t, "skus.yaml", "skus:\n  - skuName: A\n    skuName: B\n")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrLoad)
		assert.Contains(t, err.Error(), `mapping key "skuName" already defined at line 2`)
	})

	t.Run("keys differing only in case are distinct", func(t *testing.T) {
		path := writeFile(t, "skus.yaml", "skus:\n  - flag: 1\n    Flag: 2\n")
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, skuquery.Collection{skuquery.Document{
			{Key: "flag", Value: 1},
			{Key: "Flag", Value: 2},
		}}, got)
	})

	t.Run("empty YAML is a schema error", func(t *testing.T) {
		path := writeFile(t, "skus.yaml", "")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrSchema)
	})
}

func TestLoad_JS(t *testing.T) {
	t.Run("const assignment with trailing code", func(t *testing.T) {
		path := writeFile(t, "skus.js", `// generated export
const skus = [
  {"skuName": "X", "product": "P", "licenseAttributes": {"Description": "d", "TranscriptsProvisioned": true}}
];
module.exports = { skus };
`)
		got, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, wantSample, got)
	})

	t.Run("bare assignment", func(t *testing.T) {
		path := writeFile(t, "skus.js", `skus = [{"skuName": "A"}]`)
		got, err := Load(path)
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("binding name must match exactly", func(t *testing.T) {
		path := writeFile(t, "skus.js", `const allskus = [];`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrSchema)
	})

	t.Run("non-JSON literal is a load error", func(t *testing.T) {
		path := writeFile(t, "skus.js", `var skus = [{skuName: 'X'}];`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrLoad)
	})

	t.Run("non-array literal is a schema error", func(t *testing.T) {
		path := writeFile(t, "skus.js", `let skus = {"a": 1};`)
		_, err := Load(path)
		require.ErrorIs(t, err, ErrSchema)
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.json")
		_, err := Load(path)
		require.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrLoad)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("directory is a load error", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.ErrorIs(t, err, ErrLoad)
	})

	t.Run("unsupported forced format", func(t *testing.T) {
		path := writeFile(t, "skus.json", `{"skus": []}`)
		_, err := Load(path, WithFormat(Format("xml")))
		require.ErrorIs(t, err, ErrLoad)
	})
}

func TestLoad_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := writeFile(t, "skus.json", `{"skus": [{}, {}]}`)
	_, err := Load(path, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "loaded collection")
	assert.Contains(t, buf.String(), "records=2")
	assert.Contains(t, buf.String(), "format=json")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "auto": FormatAuto, "JSON": FormatJSON, "yaml": FormatYAML, "js": FormatJS} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("toml")
	require.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("a.YML"))
	assert.Equal(t, FormatYAML, FormatFor("a.yaml"))
	assert.Equal(t, FormatJS, FormatFor("/tmp/skus.js"))
	assert.Equal(t, FormatJS, FormatFor("skus.mjs"))
	assert.Equal(t, FormatJSON, FormatFor("skus.json"))
	assert.Equal(t, FormatJSON, FormatFor("skus"))
}
