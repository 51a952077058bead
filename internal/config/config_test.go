package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSet(t *testing.T) {
	set := parseSet("general_admission, Festival ,")
	assert.True(t, set["GENERAL_ADMISSION"])
	assert.True(t, set["FESTIVAL"])
	assert.False(t, set[""])
	assert.Len(t, set, 2)
}

func TestEnvHelpersFallBackToDefaults(t *testing.T) {
	assert.True(t, envBool("UNSET_TEST_VAR", true))
	assert.Equal(t, 42, envInt("UNSET_TEST_VAR", 42))
	assert.Equal(t, time.Minute, envDur("UNSET_TEST_VAR", time.Minute))
}

func TestEnvHelpersParseValues(t *testing.T) {
	t.Setenv("RL_TEST_BOOL", "off")
	t.Setenv("RL_TEST_INT", "9")
	t.Setenv("RL_TEST_DUR", "250ms")

	assert.False(t, envBool("RL_TEST_BOOL", true))
	assert.Equal(t, 9, envInt("RL_TEST_INT", 1))
	assert.Equal(t, 250*time.Millisecond, envDur("RL_TEST_DUR", time.Second))
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	// TTL is raised to five refill intervals so idle buckets survive refills.
	assert.Equal(t, 10*time.Second, cfg.TTL)
}

func TestIntDefault(t *testing.T) {
	assert.Equal(t, 25, intDefault("DB_POOL_TEST_UNSET", 25))

	t.Setenv("DB_POOL_TEST_SET", "40")
	assert.Equal(t, 40, intDefault("DB_POOL_TEST_SET", 25))

	t.Setenv("DB_POOL_TEST_BAD", "lots")
	assert.Equal(t, 25, intDefault("DB_POOL_TEST_BAD", 25))
}
