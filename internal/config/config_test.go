package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReadsFileAndDefaultFlags(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("scenario: fixtures/den.json\nlog_level: warn\n"), 0o644))

	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse(nil))

	s, err := Load(v, cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "fixtures/den.json", s.ScenarioPath)
	assert.Equal(t, "warn", s.LogLevel)
	assert.True(t, s.PrintSummary)
}

func TestBindFlagsOverridesFileValue(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level: warn\n"), 0o644))

	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--log-level=debug"}))

	s, err := Load(v, cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadWithoutConfigFileUsesFlagDefaults(t *testing.T) {
	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse(nil))

	s, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, uint64(0), s.TraceFlight)
}
