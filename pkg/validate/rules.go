// Package validate holds the rule-based checks run over normalized records.
// Every validator is a pure function of its inputs: it never reads another
// validator's output and returns value-equal findings for equal input.
package validate

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/nightaudit/pkg/names"
)

// NationalIDLength is the number of digits of a national identity number.
const NationalIDLength = 11

// Rules configures the validators. The zero value behaves like
// DefaultRules for every unset field.
type Rules struct {
	// NationalDesignators are the nationality codes of citizens.
	NationalDesignators []string `mapstructure:"national_designators" yaml:"national_designators" json:"national_designators"`

	// HomeCountries are the residence country spellings of the home country.
	HomeCountries []string `mapstructure:"home_countries" yaml:"home_countries" json:"home_countries"`

	// ReservedPrefixes mark national ID numbers issued to foreigners.
	ReservedPrefixes []string `mapstructure:"reserved_prefixes" yaml:"reserved_prefixes" json:"reserved_prefixes"`

	// RateTolerance is the absolute difference accepted between a rate and
	// a number in its comment.
	RateTolerance float64 `mapstructure:"rate_tolerance" yaml:"rate_tolerance" json:"rate_tolerance"`

	// RoutingMarker starts the comment of a room that pays for other rooms.
	RoutingMarker string `mapstructure:"routing_marker" yaml:"routing_marker" json:"routing_marker"`

	// Corporate lists fixed company and rate expectations per rate code.
	Corporate []CorporateRate `mapstructure:"corporate" yaml:"corporate" json:"corporate"`
}

// CorporateRate is the data-entry convention for one corporate account.
type CorporateRate struct {
	RateCode string  `mapstructure:"rate_code" yaml:"rate_code" json:"rate_code"`
	Company  string  `mapstructure:"company" yaml:"company" json:"company"`
	Rate     float64 `mapstructure:"rate" yaml:"rate" json:"rate"`
}

// DefaultRules returns the rules for a Turkish property.
func DefaultRules() Rules {
	return Rules{
		NationalDesignators: []string{"TC"},
		HomeCountries:       []string{"TURKEY", "TÜRKİYE", "TURKIYE"},
		ReservedPrefixes:    []string{"97", "98", "99"},
		RateTolerance:       1.0,
		RoutingMarker:       "2",
	}
}

// withDefaults fills unset fields from DefaultRules.
func (r Rules) withDefaults() Rules {
	d := DefaultRules()
	if len(r.NationalDesignators) == 0 {
		r.NationalDesignators = d.NationalDesignators
	}
	if len(r.HomeCountries) == 0 {
		r.HomeCountries = d.HomeCountries
	}
	if len(r.ReservedPrefixes) == 0 {
		r.ReservedPrefixes = d.ReservedPrefixes
	}
	if r.RateTolerance <= 0 {
		r.RateTolerance = d.RateTolerance
	}
	if strings.TrimSpace(r.RoutingMarker) == "" {
		r.RoutingMarker = d.RoutingMarker
	}
	return r
}

// Normalized returns the rules with every unset field defaulted.
func (r Rules) Normalized() Rules {
	return r.withDefaults()
}

func (r Rules) isNational(nationality string) bool {
	return containsFold(r.NationalDesignators, nationality)
}

func (r Rules) isHomeCountry(country string) bool {
	return containsFold(r.HomeCountries, country)
}

func (r Rules) tolerance() decimal.Decimal {
	return decimal.NewFromFloat(r.RateTolerance)
}

// routingPrefix is the marker followed by the space staff type after it.
func (r Rules) routingPrefix() string {
	return strings.TrimSpace(r.RoutingMarker) + " "
}

// containsFold compares with names.Canonicalize so "Türkiye", "TURKIYE"
// and "turkiye" are one country.
func containsFold(list []string, value string) bool {
	v := names.Canonicalize(value)
	if v == "" {
		return false
	}
	return slices.ContainsFunc(list, func(s string) bool {
		return names.Canonicalize(s) == v
	})
}
