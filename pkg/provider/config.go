package provider

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

const (
	KeyClient  = "client"
	KeyDebug   = "debug"
	KeyChain   = "chain"
	KeyEnabled = "enabled"
)

// Config is the loosely typed option bag handed to a plugin constructor.
type Config map[string]any

// Disabled turns a plugin off when used as its per-plugin config.
var Disabled = Config{KeyEnabled: false}

func (config Config) IsDisabled() bool {
	enabled, ok := config[KeyEnabled].(bool)
	return ok && !enabled
}

// Merge returns a new Config with the keys of override taking precedence.
func (config Config) Merge(override Config) Config {
	merged := make(Config, len(config)+len(override))
	maps.Copy(merged, config)
	maps.Copy(merged, override)
	return merged
}

// Settings are the options every plugin understands.
type Settings struct {
	Client  Doer   `mapstructure:"client" validate:"required"`
	Debug   bool   `mapstructure:"debug"`
	Chain   Chain  `mapstructure:"chain" validate:"required"`
	Enabled *bool  `mapstructure:"enabled"`
	Url     string `mapstructure:"url" validate:"omitempty,url"`
	ApiKey  string `mapstructure:"apikey"`
	// RateLimit is the maximum amount of requests per second; 0 disables limiting
	RateLimit float64       `mapstructure:"ratelimit" validate:"gte=0"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

var validate = validator.New()

// Decode decodes the config into the struct pointed to by target and validates it.
// Keys not known to the target are ignored.
func (config Config) Decode(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any(config)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := validate.Struct(target); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return newValidationError(validationErrors)
		}
		return err
	}
	return nil
}

func newValidationError(errs validator.ValidationErrors) error {
	var fields []string
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			fields = append(fields, field+" is required")
		case "url":
			fields = append(fields, field+" must be a valid url")
		default:
			fields = append(fields, fmt.Sprintf("%s failed on %s %s", field, err.Tag(), err.Param()))
		}
	}
	return errors.New("invalid config: " + strings.Join(fields, ", "))
}
