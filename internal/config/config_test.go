package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("FORMGUARD_TEST_VALUE", "abc")
	t.Setenv("FORMGUARD_TEST_EMPTY", "")

	assert.Equal(t, "abc", GetEnv("FORMGUARD_TEST_VALUE", "def"))
	assert.Equal(t, "def", GetEnv("FORMGUARD_TEST_EMPTY", "def"))
	assert.Equal(t, "def", GetEnv("FORMGUARD_TEST_UNSET", "def"))
}

func TestTypedEnv(t *testing.T) {
	t.Setenv("FORMGUARD_TEST_INT", "42")
	t.Setenv("FORMGUARD_TEST_FLOAT", "0.7")
	t.Setenv("FORMGUARD_TEST_DURATION", "3s")
	t.Setenv("FORMGUARD_TEST_BAD", "nope")

	assert.Equal(t, 42, GetIntEnv("FORMGUARD_TEST_INT", 1))
	assert.Equal(t, 1, GetIntEnv("FORMGUARD_TEST_BAD", 1))
	assert.Equal(t, 0.7, GetFloatEnv("FORMGUARD_TEST_FLOAT", 0.5))
	assert.Equal(t, 0.5, GetFloatEnv("FORMGUARD_TEST_BAD", 0.5))
	assert.Equal(t, 3*time.Second, GetDurationEnv("FORMGUARD_TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, GetDurationEnv("FORMGUARD_TEST_BAD", time.Second))
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "staging")
	assert.False(t, IsProduction())
}
