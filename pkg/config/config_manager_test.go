package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetString(t *testing.T) {
	manager := NewConfigManager("TEST_")
	t.Setenv("TEST_KEY", "test_value")

	value, err := manager.GetString("KEY")
	require.NoError(t, err)
	assert.Equal(t, "test_value", value)
}

func TestManager_GetString_Missing(t *testing.T) {
	manager := NewConfigManager("TEST_")

	_, err := manager.GetString("NON_EXISTENT_KEY")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_GetStringWithDefault(t *testing.T) {
	manager := NewConfigManager("TEST_")
	t.Setenv("TEST_KEY", "test_value")

	assert.Equal(t, "test_value", manager.GetStringWithDefault("KEY", "default_value"))
	assert.Equal(t, "default_value", manager.GetStringWithDefault("NON_EXISTENT_KEY", "default_value"))
}

func TestManager_GetInt(t *testing.T) {
	manager := NewConfigManager("TEST_")
	t.Setenv("TEST_WIDTH", "42")
	t.Setenv("TEST_BAD_WIDTH", "wide")

	value, err := manager.GetInt("WIDTH")
	require.NoError(t, err)
	assert.Equal(t, 42, value)

	_, err = manager.GetInt("BAD_WIDTH")
	assert.ErrorContains(t, err, "invalid integer value")
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = manager.GetInt("MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_GetBool(t *testing.T) {
	manager := NewConfigManager("TEST_")
	t.Setenv("TEST_BOOL_TRUE", "true")
	t.Setenv("TEST_BOOL_FALSE", "0")
	t.Setenv("TEST_BOOL_INVALID", "not-a-bool")

	value, err := manager.GetBool("BOOL_TRUE")
	require.NoError(t, err)
	assert.True(t, value)

	value, err = manager.GetBool("BOOL_FALSE")
	require.NoError(t, err)
	assert.False(t, value)

	_, err = manager.GetBool("BOOL_INVALID")
	assert.Error(t, err)
}
