package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GREETLY_SOURCE_PATH", "testdata/roster.xlsx")
	t.Setenv("GREETLY_GATEWAY_URL", "https://gateway.example.com/send")
	t.Setenv("GREETLY_GATEWAY_API_KEY", "gw-test-key")
	t.Setenv("GREETLY_GATEWAY_TO", "+12025550123")
}

func TestLoad(t *testing.T) {
	t.Run("Should load from environment over defaults", func(t *testing.T) {
		setValidEnv(t)
		t.Setenv("GREETLY_GATEWAY_FROM", "Birthday Bot")
		t.Setenv("GREETLY_GATEWAY_TIMEOUT", "5s")
		t.Setenv("GREETLY_LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "testdata/roster.xlsx", cfg.Source.Path)
		assert.Equal(t, "https://gateway.example.com/send", cfg.Gateway.URL)
		assert.Equal(t, "gw-test-key", cfg.Gateway.APIKey.Value())
		assert.Equal(t, "+12025550123", cfg.Gateway.To)
		assert.Equal(t, "Birthday Bot", cfg.Gateway.From)
		assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Should keep defaults when env leaves them unset", func(t *testing.T) {
		setValidEnv(t)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Gateway.MaxAttempts)
		assert.Equal(t, 2*time.Second, cfg.Gateway.BackoffBase)
		assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
		assert.Equal(t, "Greetly", cfg.Gateway.From)
	})

	t.Run("Should reject a missing source path", func(t *testing.T) {
		setValidEnv(t)
		t.Setenv("GREETLY_SOURCE_PATH", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Should reject malformed recipients", func(t *testing.T) {
		for _, to := range []string{"12025550123", "+123", "+1202555012345678", "+1202555a123"} {
			setValidEnv(t)
			t.Setenv("GREETLY_GATEWAY_TO", to)
			_, err := Load()
			assert.Error(t, err, "recipient %q", to)
		}
	})

	t.Run("Should reject a non-http gateway URL", func(t *testing.T) {
		setValidEnv(t)
		t.Setenv("GREETLY_GATEWAY_URL", "not a url")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestSensitiveString(t *testing.T) {
	t.Run("Should redact non-empty values in String", func(t *testing.T) {
		assert.Equal(t, "[REDACTED]", SensitiveString("secret").String())
		assert.Equal(t, "", SensitiveString("").String())
	})

	t.Run("Should expose the raw value only via Value", func(t *testing.T) {
		assert.Equal(t, "secret", SensitiveString("secret").Value())
	})

	t.Run("Should marshal as the redacted form", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Key SensitiveString `json:"key"`
		}{Key: "secret"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"key":"[REDACTED]"}`, string(data))
	})

	t.Run("Should unmarshal the raw value", func(t *testing.T) {
		var s SensitiveString
		require.NoError(t, json.Unmarshal([]byte(`"raw"`), &s))
		assert.Equal(t, "raw", s.Value())
	})
}
