package metrics

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDecodeConfig(t *testing.T) {
	cfg, err := NewDecodeConfig()
	require.NoError(t, err)
	require.False(t, cfg.Force())
	require.NotNil(t, cfg.Logger())
	require.False(t, cfg.swapGTCalled)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg, err = NewDecodeConfig(WithForce(true), WithLogger(logger), WithSwappedCalledIntensity(true))
	require.NoError(t, err)
	require.True(t, cfg.Force())
	require.Same(t, logger, cfg.Logger())
	require.True(t, cfg.swapGTCalled)

	_, err = NewDecodeConfig(WithLogger(nil))
	require.ErrorContains(t, err, "logger: nil logger")
}
