// Package lookup canonicalises identifiers, dates and times entered on the
// workflow forms and resolves normalised keys against reference tables.
package lookup

import (
	"strings"
	"unicode"
)

// Kind selects the normalisation rule applied by NormalizeIdentifier.
type Kind int

const (
	// KindRegistration is a GMC-style clinician registration number.
	KindRegistration Kind = iota
	// KindDevice is a device code or UDI string. UDIs are case-sensitive.
	KindDevice
	// KindText is free text used for name searches.
	KindText
)

// NormalizeIdentifier canonicalises raw according to kind. An empty result
// means "no query".
func NormalizeIdentifier(raw string, kind Kind) string {
	switch kind {
	case KindRegistration:
		var b strings.Builder
		for _, r := range raw {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		return b.String()
	case KindDevice:
		return strings.TrimSpace(raw)
	case KindText:
		return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	default:
		return strings.TrimSpace(raw)
	}
}

// NormalizeNHSNumber removes every whitespace character from raw.
func NormalizeNHSNumber(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}
