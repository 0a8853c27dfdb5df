package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pkgindex/pkg/config"
)

type testConfig struct {
	Name    string        `env:"CFG_TEST_NAME" envDefault:"pkgindex"`
	Port    int           `env:"CFG_TEST_PORT" envDefault:"8080"`
	Timeout time.Duration `env:"CFG_TEST_TIMEOUT" envDefault:"2s"`
}

type requiredConfig struct {
	Secret string `env:"CFG_TEST_SECRET,required,notEmpty"`
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "pkgindex", cfg.Name)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoad_FromEnvAndCached(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("CFG_TEST_NAME", "first")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Name)

	t.Setenv("CFG_TEST_NAME", "second")
	var again testConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Name)

	config.ResetCache()
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "second", again.Name)
}

func TestLoad_Required(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("CFG_TEST_SECRET", "")

	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *testConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("CFG_TEST_PORT", "7000")
	t.Setenv("CFG_TEST_NAME", "")
	require.NoError(t, os.Unsetenv("CFG_TEST_NAME"))

	require.NoError(t, config.LoadEnv("testdata/app.env"))
	t.Cleanup(func() { _ = os.Unsetenv("CFG_TEST_NAME") })

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.Name)
	assert.Equal(t, 7000, cfg.Port)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnv)
}
