package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
)

// RepairLegacyEncoding fixes text that was stored as Windows-1254 and read
// back as Windows-1252, the usual state of spreadsheet exports from the
// registration system: "Adý" becomes "Adı", "Þahin" becomes "Şahin".
// Runes outside Windows-1252 are already correct and pass through. The
// æ/Æ pair some exports emit for ç/Ç is repaired as well.
func RepairLegacyEncoding(s string) string {
	return ligatures.Replace(strings.Map(func(r rune) rune {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			return r
		}
		return charmap.Windows1254.DecodeByte(b)
	}, s))
}

var ligatures = strings.NewReplacer("æ", "ç", "Æ", "Ç")

var dotless = strings.NewReplacer("ı", "i")

// Transliterate maps Turkish letters to their ASCII base letters.
func Transliterate(s string) string {
	return fold(dotless.Replace(s))
}

// TitleCase lower-cases a name and capitalizes each word, collapsing runs
// of whitespace: "  AYSE   nur " becomes "Ayse Nur".
func TitleCase(s string) string {
	return cases.Title(language.Und).String(collapseSpaces(s))
}

// CleanRegistrationName prepares a name read from a registration
// spreadsheet: legacy encoding repaired, transliterated, title-cased.
func CleanRegistrationName(s string) string {
	return TitleCase(Transliterate(RepairLegacyEncoding(s)))
}
