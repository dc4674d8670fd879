package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, c.GetBool("debug"))
	assert.Equal(t, 8080, c.GetInt("server.port"))
}

func TestNew_EnvOverride(t *testing.T) {
	require.NoError(t, os.Setenv("QCORE_SERVER_PORT", "9090"))
	defer os.Unsetenv("QCORE_SERVER_PORT")
	require.NoError(t, os.Setenv("QCORE_DEBUG", "true"))
	defer os.Unsetenv("QCORE_DEBUG")

	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, 9090, c.GetInt("server.port"))
	assert.True(t, c.GetBool("debug"))
}

func TestNew_MissingConfigFileIsNotAnError(t *testing.T) {
	_, err := New(Options{ConfigFile: "/nonexistent/qcore.yaml"})
	assert.NoError(t, err)
}
