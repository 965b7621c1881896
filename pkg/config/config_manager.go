package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrNotFound is returned when a configuration key is not set
var ErrNotFound = errors.New("configuration key not found")

// Manager reads configuration values from the environment
type Manager interface {
	GetString(key string) (string, error)
	GetStringWithDefault(key, defaultValue string) string
	GetInt(key string) (int, error)
	GetBool(key string) (bool, error)
}

// EnvManager implements Manager over environment variables sharing a prefix
type EnvManager struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewConfigManager creates a manager for variables named prefix+key
func NewConfigManager(prefix string) *EnvManager {
	return &EnvManager{prefix: prefix, lookup: os.LookupEnv}
}

func (m *EnvManager) get(key string) (string, error) {
	value, ok := m.lookup(m.prefix + key)
	if !ok || value == "" {
		return "", fmt.Errorf("%s%s: %w", m.prefix, key, ErrNotFound)
	}
	return value, nil
}

// GetString gets a configuration value by key, returns ErrNotFound if unset
func (m *EnvManager) GetString(key string) (string, error) {
	return m.get(key)
}

// GetStringWithDefault gets a configuration value by key, returns default if unset
func (m *EnvManager) GetStringWithDefault(key, defaultValue string) string {
	value, err := m.get(key)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetInt gets an integer configuration value by key
func (m *EnvManager) GetInt(key string) (int, error) {
	value, err := m.get(key)
	if err != nil {
		return 0, err
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("configuration key %s%s has invalid integer value: %s", m.prefix, key, value)
	}
	return intValue, nil
}

// GetBool gets a boolean configuration value by key
func (m *EnvManager) GetBool(key string) (bool, error) {
	value, err := m.get(key)
	if err != nil {
		return false, err
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("configuration key %s%s has invalid boolean value: %s", m.prefix, key, value)
	}
	return boolValue, nil
}
