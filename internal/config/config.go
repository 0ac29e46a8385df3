// Package config reads audit settings from viper: validator rules under
// "rules" and source options under "sources".
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/agentstation/nightaudit/pkg/errors"
	"github.com/agentstation/nightaudit/pkg/sources"
	"github.com/agentstation/nightaudit/pkg/validate"
)

// Keys.
const (
	KeyRules           = "rules"
	KeyPseudoRoomFloor = "sources.pseudo_room_floor"
)

// SetDefaults registers the default values so env overrides of nested keys
// are visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := validate.DefaultRules()
	v.SetDefault(KeyRules+".national_designators", d.NationalDesignators)
	v.SetDefault(KeyRules+".home_countries", d.HomeCountries)
	v.SetDefault(KeyRules+".reserved_prefixes", d.ReservedPrefixes)
	v.SetDefault(KeyRules+".rate_tolerance", d.RateTolerance)
	v.SetDefault(KeyRules+".routing_marker", d.RoutingMarker)
	v.SetDefault(KeyPseudoRoomFloor, sources.DefaultPseudoRoomFloor)
}

// Rules decodes and checks the validator rules.
func Rules(v *viper.Viper) (validate.Rules, error) {
	var rules validate.Rules
	if err := v.UnmarshalKey(KeyRules, &rules); err != nil {
		return validate.Rules{}, errors.NewConfigError("rules", "cannot decode", err)
	}

	if rules.RateTolerance < 0 {
		return validate.Rules{}, errors.NewConfigError("rules", "rate_tolerance must not be negative", nil)
	}
	for i, c := range rules.Corporate {
		if strings.TrimSpace(c.RateCode) == "" {
			return validate.Rules{}, errors.NewConfigError("rules",
				fmt.Sprintf("corporate[%d]: rate_code is required", i), nil)
		}
		if strings.TrimSpace(c.Company) == "" && c.Rate <= 0 {
			return validate.Rules{}, errors.NewConfigError("rules",
				fmt.Sprintf("corporate[%d] (%s): needs a company or a rate", i, c.RateCode), nil)
		}
	}

	return rules.Normalized(), nil
}

// SourceOptions returns the registry options from configuration.
func SourceOptions(v *viper.Viper) []sources.Option {
	return []sources.Option{sources.WithPseudoRoomFloor(v.GetInt(KeyPseudoRoomFloor))}
}

// GetString checks viper first and falls back to the OS environment.
func GetString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}
