// Package identity derives stable identities for commentary events.
//
// Two records describing the same real-world event must hash to the same
// identity even when the feed re-serializes them with cosmetic changes
// (whitespace, punctuation, casing, trailing text past the truncation
// point). The identity is only ever compared for equality, never decoded.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// maxDescriptionRunes bounds the normalized description so trailing
// edits between polls do not change the identity.
const maxDescriptionRunes = 100

// Compute returns the deterministic identity for an event.
func Compute(minute, description, category string) string {
	key := normalizeMinute(minute) + "|" + category + "|" + normalizeDescription(description)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// normalizeMinute strips everything but digits: "45+2'" -> "452".
func normalizeMinute(minute string) string {
	var b strings.Builder
	for _, r := range minute {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeDescription lower-cases, keeps letters (including accented
// ones) and digits, collapses runs of whitespace, and truncates.
func normalizeDescription(desc string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(desc) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	collapsed := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(collapsed)
	if len(runes) > maxDescriptionRunes {
		runes = runes[:maxDescriptionRunes]
	}
	return strings.TrimSpace(string(runes))
}
