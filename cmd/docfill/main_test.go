package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docfill/internal/adapters/driven/docx"
	"github.com/custodia-labs/docfill/internal/config"
)

const sampleTemplate = "SAFE\nThe Investor agrees to pay $[_____________] to [Company Name].\nName: ________"

func writeDocx(t *testing.T, dir, name, text string) string {
	t.Helper()
	data, err := docx.NewBuilder().Build(context.Background(), text)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	fillSets, fillValuesFile, fillOut = nil, "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestScanCommand(t *testing.T) {
	path := writeDocx(t, t.TempDir(), "safe.docx", sampleTemplate)

	out := execute(t, "scan", path)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Contains(t, lines, "Company Name")
	assert.Contains(t, lines, "Amount")
	assert.Contains(t, lines, "Name")
}

func TestFillCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeDocx(t, dir, "safe.docx", sampleTemplate)
	out := filepath.Join(dir, "out.docx")

	printed := execute(t, "fill", path,
		"--set", "Company Name=Acme Inc.",
		"--set", "Amount=250000",
		"--set", "Name=Jane Doe",
		"--out", out)
	assert.Equal(t, out, strings.TrimSpace(printed))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	text, err := docx.NewExtractor().Extract(context.Background(), f)
	require.NoError(t, err)
	assert.Contains(t, text, "to Acme Inc..")
	assert.Contains(t, text, "$250000")
	assert.Contains(t, text, "Name: Jane Doe")
}

func TestCollectValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"B":"2","A":"1"}`), 0o644))

	values, err := collectValues(path, []string{"A=override", "C = 3"})
	require.NoError(t, err)

	require.Len(t, values, 3)
	assert.Equal(t, "B", values[0].Name)
	assert.Equal(t, "A", values[1].Name)
	assert.Equal(t, "override", values[1].Value)
	assert.Equal(t, "C", values[2].Name)
	assert.Equal(t, " 3", values[2].Value)
}

func TestCollectValues_InvalidPair(t *testing.T) {
	_, err := collectValues("", []string{"no-equals"})
	assert.Error(t, err)

	_, err = collectValues("", []string{"=value"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = newLogger(config.LoggingConfig{Level: "loud"}, &buf)
	assert.Error(t, err)
}
