package validate

import (
	"strings"

	"github.com/agentstation/nightaudit/pkg/records"
)

// Documents runs DocumentCompleteness on every record and
// DocumentConsistency on the records that passed it.
func Documents(police []records.GuestRecord, rules Rules) []records.Finding {
	var out []records.Finding
	for _, g := range police {
		missing := completeness(g)
		out = append(out, missing...)
		if len(missing) == 0 {
			out = append(out, consistency(g, rules.withDefaults())...)
		}
	}
	return out
}

// DocumentCompleteness flags each empty identity field separately, up to
// four findings per guest.
func DocumentCompleteness(police []records.GuestRecord) []records.Finding {
	var out []records.Finding
	for _, g := range police {
		out = append(out, completeness(g)...)
	}
	return out
}

// DocumentConsistency checks document type against nationality, residence
// and number. Empty fields are left to DocumentCompleteness.
func DocumentConsistency(police []records.GuestRecord, rules Rules) []records.Finding {
	rules = rules.withDefaults()
	var out []records.Finding
	for _, g := range police {
		out = append(out, consistency(g, rules)...)
	}
	return out
}

func completeness(g records.GuestRecord) []records.Finding {
	name := displayName(g)
	var out []records.Finding
	if blank(g.DocumentNumber) {
		out = append(out, records.NewFinding(records.MissingBelgeNo, g.RoomNo, "Missing document number: %s", name))
	}
	if blank(g.DocumentType) {
		out = append(out, records.NewFinding(records.MissingBelgeTuru, g.RoomNo, "Missing document type: %s", name))
	}
	if blank(g.ResidenceCountry) {
		out = append(out, records.NewFinding(records.MissingIkametAdresi, g.RoomNo, "Missing residence country: %s", name))
	}
	if blank(g.Nationality) {
		out = append(out, records.NewFinding(records.MissingUyruk, g.RoomNo, "Missing nationality: %s", name))
	}
	return out
}

func consistency(g records.GuestRecord, rules Rules) []records.Finding {
	name := displayName(g)
	var out []records.Finding

	switch strings.TrimSpace(g.DocumentType) {
	case records.DocumentNationalID:
		if !blank(g.Nationality) && !rules.isNational(g.Nationality) {
			out = append(out, records.NewFinding(records.TCUyrukMismatch, g.RoomNo,
				"National ID holder with nationality %q: %s", g.Nationality, name))
		}
		if !blank(g.ResidenceCountry) && !rules.isHomeCountry(g.ResidenceCountry) {
			out = append(out, records.NewFinding(records.TCIkametMismatch, g.RoomNo,
				"National ID holder residing in %q: %s", g.ResidenceCountry, name))
		}
		if number := strings.TrimSpace(g.DocumentNumber); number != "" {
			valid := isNationalIDNumber(number)
			reserved := rules.hasReservedPrefix(number)
			switch {
			case !valid && !reserved:
				out = append(out, records.NewFinding(records.TCBelgeNoInvalid, g.RoomNo,
					"Invalid national ID number %q: %s", number, name))
			case valid && reserved:
				out = append(out, records.NewFinding(records.TCKN9xWarning, g.RoomNo,
					"National ID number %q uses a foreigner prefix, document type may be passport: %s", number, name))
			}
		}

	case records.DocumentPassport:
		if !blank(g.Nationality) && rules.isNational(g.Nationality) {
			out = append(out, records.NewFinding(records.PasUyrukTC, g.RoomNo,
				"Passport holder with nationality %q: %s", g.Nationality, name))
		}
		if !blank(g.ResidenceCountry) && rules.isHomeCountry(g.ResidenceCountry) {
			out = append(out, records.NewFinding(records.PasIkametTurkey, g.RoomNo,
				"Passport holder residing in %q: %s", g.ResidenceCountry, name))
		}
	}
	return out
}

// isNationalIDNumber reports whether s is exactly NationalIDLength digits.
func isNationalIDNumber(s string) bool {
	if len(s) != NationalIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (r Rules) hasReservedPrefix(number string) bool {
	for _, p := range r.ReservedPrefixes {
		if p != "" && strings.HasPrefix(number, p) {
			return true
		}
	}
	return false
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
