package dataprocessing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UnknownDoctorName is the placeholder used when a row has no doctor name.
const UnknownDoctorName = "Desconocido"

// asciiFold decomposes to NFKD and drops the combining marks, so accented
// letters collapse to their ASCII base ("José" -> "Jose").
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// NormalizeName canonicalizes a free-text doctor name into its display
// form: diacritics stripped, surrounding whitespace trimmed, each token
// title-cased. A nil or blank value yields UnknownDoctorName. The function
// is pure and idempotent.
func NormalizeName(raw *string) string {
	if raw == nil {
		return UnknownDoctorName
	}
	name := strings.TrimSpace(*raw)
	if name == "" {
		return UnknownDoctorName
	}

	if folded, _, err := transform.String(asciiFold, name); err == nil {
		name = folded
	}
	// Anything NFKD could not reduce to ASCII is dropped outright.
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, name)

	fields := strings.Fields(name)
	if len(fields) == 0 {
		// Name was entirely non-ASCII; nothing displayable survived.
		return UnknownDoctorName
	}
	for i, f := range fields {
		fields[i] = titleToken(f)
	}
	return strings.Join(fields, " ")
}

func titleToken(token string) string {
	r := []rune(strings.ToLower(token))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
