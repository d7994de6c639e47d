package config

import (
	"encoding/json"
	"time"
)

// Config is the full configuration surface for one pipeline invocation.
// Values are passed into components explicitly; there is no process-wide
// configuration singleton.
type Config struct {
	Source  SourceConfig  `koanf:"source"`
	Gateway GatewayConfig `koanf:"gateway"`
	Log     LogConfig     `koanf:"log"`
}

// SourceConfig locates the roster spreadsheet.
type SourceConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// GatewayConfig describes the HTTP messaging gateway. To must be a `+`
// followed by 10 to 15 digits.
type GatewayConfig struct {
	URL         string          `koanf:"url"          validate:"required,http_url"`
	APIKey      SensitiveString `koanf:"api_key"      validate:"required"             sensitive:"true"`
	From        string          `koanf:"from"         validate:"required"`
	To          string          `koanf:"to"           validate:"required,recipient"`
	Timeout     time.Duration   `koanf:"timeout"`
	MaxAttempts int             `koanf:"max_attempts" validate:"min=1,max=10"`
	BackoffBase time.Duration   `koanf:"backoff_base"`
}

// LogConfig controls the logging collaborator.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

func Default() *Config {
	return &Config{
		Gateway: GatewayConfig{
			From:        "Greetly",
			Timeout:     10 * time.Second,
			MaxAttempts: 3,
			BackoffBase: 2 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// -----------------------------------------------------------------------------
// SensitiveString
// -----------------------------------------------------------------------------

// SensitiveString holds a credential. Its String and JSON representations
// are redacted so accidental logging or result serialization cannot leak
// the value; callers that need the real value use Value().
type SensitiveString string

func (s SensitiveString) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

func (s SensitiveString) Value() string {
	return string(s)
}

func (s SensitiveString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SensitiveString) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SensitiveString(raw)
	return nil
}
