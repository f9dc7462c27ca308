package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iismap/internal/diagnostic"
	"iismap/internal/store"
)

func TestParse(t *testing.T) {
	yamlData := `
version: "1"
warnings_as_errors: true
suppress: [unknown_bits, dangling_reference]
output:
  format: sqlite
log:
  debug: true
  file: logs/iismap.log
  max_backups: 7
`

	c, err := Parse([]byte(yamlData))
	require.NoError(t, err)

	assert.True(t, c.WarningsAsErrors)
	assert.Equal(t, []string{"unknown_bits", "dangling_reference"}, c.Suppress)
	assert.Equal(t, store.FormatSQLite, c.Output.Format)
	assert.True(t, c.Log.Debug)
	assert.Equal(t, "logs/iismap.log", c.Log.File)
	assert.Equal(t, 10, c.Log.MaxSizeMB, "defaulted")
	assert.Equal(t, 7, c.Log.MaxBackups)
}

func TestParseMinimal(t *testing.T) {
	c, err := Parse([]byte("{}"))
	require.NoError(t, err)

	assert.Equal(t, Default(), c)
	assert.Equal(t, "1", c.Version)
	assert.Equal(t, store.FormatYAML, c.Output.Format)
	assert.Zero(t, c.Log.MaxSizeMB, "no rotation defaults without a file")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "suppress: [", "failed to parse config YAML"},
		{"version", `version: "9"`, "unsupported config version"},
		{"format", "output: {format: csv}", "unknown output format"},
		{"rotation", "log: {file: a.log, max_backups: -1}", "cannot be negative"},
		{"type mismatch", "warnings_as_errors: sometimes", "failed to parse config YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_UnknownSuppressedCode(t *testing.T) {
	c := Default()
	c.Suppress = []string{"unknown_bit", "unknown_value"}

	diags := Validate(c)
	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Contains(t, diags.Warnings[0].Message, `"unknown_bit"`)
	assert.Contains(t, diags.Warnings[0].Suggestions, "unknown_bits")
}

func TestValidate_Nil(t *testing.T) {
	assert.True(t, Validate(nil).HasErrors())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iismap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("warnings_as_errors: true\n"), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, c.WarningsAsErrors)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestMarshal_RoundTrip(t *testing.T) {
	c := Default()
	c.Suppress = []string{"unknown_value"}
	c.Log.File = "x.log"
	applyDefaults(c)

	data, err := Marshal(c)
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestPolicy(t *testing.T) {
	c := Default()
	c.Suppress = []string{"unknown_bits"}
	c.WarningsAsErrors = true

	diags := &diagnostic.Diagnostics{}
	diags.Add(diagnostic.UnknownBits("IIsWebDirProperties", "DP", "Access", 0x8))
	diags.Add(diagnostic.DanglingReference("IIsMimeMap", "m", "IIsWebVirtualDir", "V"))

	diags.Apply(c.Policy())

	assert.Empty(t, diags.Warnings)
	require.Len(t, diags.Errors, 1, "suppressed codes disappear, the rest are promoted")
	assert.Equal(t, diagnostic.CodeDanglingReference, diags.Errors[0].Code)
	assert.Equal(t, diagnostic.DiagnosticError, diags.Errors[0].Severity)
}
