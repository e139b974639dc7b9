package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"group-planner/modules/suggestion/entity"
)

// PreferenceFingerprint derives a stable digest of a group's preference
// state. The same set of member preferences always hashes to the same value
// regardless of row order, so it doubles as a cache key component: any
// change to the inputs invalidates cached suggestions naturally.
func PreferenceFingerprint(prefs []entity.MemberLocationPreference) string {
	lines := make([]string, 0, len(prefs))
	for _, p := range prefs {
		cats := make([]string, len(p.Preferences))
		copy(cats, p.Preferences)
		sort.Strings(cats)

		var sb strings.Builder
		sb.WriteString(p.MemberID.String())
		sb.WriteByte('|')
		if p.Address != nil {
			sb.WriteString(strings.TrimSpace(*p.Address))
		}
		sb.WriteByte('|')
		sb.WriteString(strings.Join(cats, ","))
		sb.WriteByte('|')
		if p.FreeTextPreference != nil {
			sb.WriteString(strings.TrimSpace(*p.FreeTextPreference))
		}
		lines = append(lines, sb.String())
	}
	sort.Strings(lines)

	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}
