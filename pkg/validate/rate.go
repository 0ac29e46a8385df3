package validate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/agentstation/nightaudit/pkg/names"
	"github.com/agentstation/nightaudit/pkg/records"
	"github.com/agentstation/nightaudit/pkg/sources"
)

// Highlights marks the cells of a room row that need a second look. They
// are display hints, not findings.
type Highlights struct {
	Rate    bool `json:"rate" yaml:"rate"`
	Comment bool `json:"comment" yaml:"comment"`
	CaCl    bool `json:"ca_cl" yaml:"ca_cl"`
	Company bool `json:"company" yaml:"company"`
}

// Any reports whether any cell is highlighted.
func (h Highlights) Any() bool {
	return h.Rate || h.Comment || h.CaCl || h.Company
}

// paymentCityLedger is the direct-bill payment method.
const paymentCityLedger = "CL"

// RateCheck derives the highlight flags of one in-house record.
//
// The comment cell is highlighted for routing comments, the CA/CL cell for
// city-ledger rooms. The rate cell is highlighted when a non-zero rate is
// not found in a non-empty, non-routing comment, or when a corporate rate
// code carries a different fixed rate. The company cell is highlighted
// when a corporate rate code is booked on another company.
func RateCheck(g records.GuestRecord, rules Rules) Highlights {
	rules = rules.withDefaults()

	var h Highlights
	_, routed := routingComment([]records.GuestRecord{g}, rules)
	h.Comment = routed
	h.CaCl = strings.EqualFold(strings.TrimSpace(g.PaymentMethod), paymentCityLedger)

	if comment := commentText(g); !routed && comment != "" {
		h.Rate = !RateMatchesComment(g.Rate, comment, rules.tolerance())
	}

	for _, c := range rules.Corporate {
		if !strings.EqualFold(strings.TrimSpace(c.RateCode), strings.TrimSpace(g.RateCode)) {
			continue
		}
		if c.Company != "" && !strings.Contains(names.Canonicalize(g.CompanyName), names.Canonicalize(c.Company)) {
			h.Company = true
		}
		if c.Rate > 0 && g.Rate.Sub(decimal.NewFromFloat(c.Rate)).Abs().GreaterThan(rules.tolerance()) {
			h.Rate = true
		}
	}
	return h
}

// numberToken matches a number with optional thousand or decimal separators.
var numberToken = regexp.MustCompile(`\d(?:[\d.,]*\d)?`)

// RateMatchesComment reports whether rate is stated in comment, either
// literally in the normalized text or as a number within tolerance. A zero
// rate always matches.
func RateMatchesComment(rate decimal.Decimal, comment string, tolerance decimal.Decimal) bool {
	if rate.IsZero() {
		return true
	}
	normalized := normalizeNumericText(comment)
	if strings.Contains(normalized, rate.String()) {
		return true
	}
	for _, token := range numberToken.FindAllString(comment, -1) {
		if sources.ParseDecimal(token).Sub(rate).Abs().LessThanOrEqual(tolerance) {
			return true
		}
	}
	return false
}

// normalizeNumericText keeps digits and decimal points, turning commas into
// points and everything else into spaces.
func normalizeNumericText(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		case r == ',':
			return '.'
		default:
			return ' '
		}
	}, s)
}
