package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProductionDefaultsAreValid(t *testing.T) {
	require.NoError(t, Production().Validate())
}

func TestTestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Test().Validate())
}

func TestValidateRejectsFreshnessEqualToInterval(t *testing.T) {
	cfg := Production()
	cfg.FreshnessWindow = cfg.AnnounceInterval
	require.Error(t, cfg.Validate())
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	os.Setenv("TTORRENT_BIND_ADDR", ":7000")
	os.Setenv("TTORRENT_ANNOUNCE_INTERVAL", "120")
	os.Setenv("TTORRENT_FRESHNESS_WINDOW", "300")
	defer func() {
		os.Unsetenv("TTORRENT_BIND_ADDR")
		os.Unsetenv("TTORRENT_ANNOUNCE_INTERVAL")
		os.Unsetenv("TTORRENT_FRESHNESS_WINDOW")
	}()

	cfg, err := Load(Production())
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.BindAddr)
	require.Equal(t, 120*time.Second, cfg.AnnounceInterval)
	require.Equal(t, 300*time.Second, cfg.FreshnessWindow)
}

func TestLoadIgnoresInvalidEnvValues(t *testing.T) {
	os.Setenv("TTORRENT_DEFAULT_NUMWANT", "not-a-number")
	defer os.Unsetenv("TTORRENT_DEFAULT_NUMWANT")

	cfg, err := Load(Production())
	require.NoError(t, err)
	require.Equal(t, Production().DefaultNumWant, cfg.DefaultNumWant)
}
