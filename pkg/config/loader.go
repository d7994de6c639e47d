package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "GREETLY_"

// recipientRe is validated upstream of the pipeline: a `+` followed by 10
// to 15 digits.
var recipientRe = regexp.MustCompile(`^\+[0-9]{10,15}$`)

// sensitiveStringDecodeHook converts plain strings into SensitiveString
// during unmarshaling.
func sensitiveStringDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(SensitiveString("")) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return SensitiveString(v), nil
	case []byte:
		return SensitiveString(v), nil
	default:
		return data, nil
	}
}

// Load builds the configuration from defaults and GREETLY_-prefixed
// environment variables, applies any overrides (flag values from the CLI),
// then validates the result. Env keys map onto config paths by lowercasing
// and splitting on the first underscore:
// GREETLY_GATEWAY_API_KEY -> gateway.api_key.
func Load(overrides ...func(*Config)) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(key), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				sensitiveStringDecodeHook,
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	for _, override := range overrides {
		override(cfg)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// transformEnvKey maps GREETLY_SECTION_FIELD_NAME onto section.field_name.
func transformEnvKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}

// Validate runs struct validation, including the recipient shape rule.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.RegisterValidation("recipient", func(fl validator.FieldLevel) bool {
		return recipientRe.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register recipient validator: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
