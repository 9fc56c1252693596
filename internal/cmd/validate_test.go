package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeValidate(t *testing.T, args []string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"validate"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestValidateCommandRequiresArgs(t *testing.T) {
	_, err := executeValidate(t, nil)
	assert.Error(t, err)
}

func TestValidateBareNames(t *testing.T) {
	output, err := executeValidate(t, []string{"Acme.010125.051225.csv", "Globex.150625.200625.xml"})
	require.NoError(t, err)

	assert.Contains(t, output, "Acme.010125.051225.csv -> "+filepath.Join("010125", "csv", "Acme"))
	assert.Contains(t, output, "Globex.150625.200625.xml -> "+filepath.Join("150625", "xml", "Globex"))
	assert.Contains(t, output, "✓ All 2 name(s) valid!")
}

func TestValidateInvalidName(t *testing.T) {
	output, err := executeValidate(t, []string{"Acme.010125.051225.csv", "acme-report.csv"})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "validation failed with 1 invalid name(s)")
	assert.Contains(t, output, "✗ acme-report.csv:")
	assert.Contains(t, output, "Found 1 invalid name(s)!")
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Acme.010125.051225.csv"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Umbrella.051225.010125.csv"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("c"), 0o644))

	output, err := executeValidate(t, []string{dir})
	require.Error(t, err)

	assert.Contains(t, output, "Acme.010125.051225.csv -> ")
	assert.Contains(t, output, "✗ Umbrella.051225.010125.csv:")
	assert.Contains(t, output, "precedes")
	assert.NotContains(t, output, ".hidden")
}

func TestValidateFilePathUsesBaseName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Acme.010125.051225.csv")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	output, err := executeValidate(t, []string{path})
	require.NoError(t, err)
	assert.Contains(t, output, "✓ All 1 name(s) valid!")
}

func TestValidateEmptyDirectory(t *testing.T) {
	output, err := executeValidate(t, []string{t.TempDir()})
	require.NoError(t, err)
	assert.Contains(t, output, "Nothing to validate.")
}
