// Package fields builds per-job application form configurations from admin settings
// and describes how each configured field is rendered and collected.
package fields

import (
	"strings"

	"github.com/jonathan/hiring-portal/internal/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Setting is the admin's tri-state choice for a field.
type Setting string

const (
	Mandatory Setting = "mandatory"
	Optional  Setting = "optional"
	Off       Setting = "off"
)

// Known field keys.
const (
	KeyFullName    = "full_name"
	KeyEmail       = "email"
	KeyPhone       = "phone"
	KeyGender      = "gender"
	KeyDomicile    = "domicile"
	KeyLinkedIn    = "linkedin"
	KeyDateOfBirth = "date_of_birth"
	KeyPhoto       = "photo"
)

// CanonicalKeys is the fixed order fields appear in on every form.
var CanonicalKeys = []string{
	KeyFullName,
	KeyEmail,
	KeyPhone,
	KeyGender,
	KeyDomicile,
	KeyLinkedIn,
	KeyDateOfBirth,
	KeyPhoto,
}

// ParseSetting converts a raw setting. Unknown values report false.
func ParseSetting(raw string) (Setting, bool) {
	switch s := Setting(strings.ToLower(strings.TrimSpace(raw))); s {
	case Mandatory, Optional, Off:
		return s, true
	}
	return "", false
}

// DefaultSettings returns the settings a new job starts with.
func DefaultSettings() map[string]Setting {
	return map[string]Setting{
		KeyFullName:    Mandatory,
		KeyEmail:       Mandatory,
		KeyPhone:       Mandatory,
		KeyGender:      Optional,
		KeyDomicile:    Optional,
		KeyLinkedIn:    Optional,
		KeyDateOfBirth: Optional,
		KeyPhoto:       Optional,
	}
}

// Build turns admin settings into an ordered field configuration.
// Keys outside CanonicalKeys are ignored; keys set to Off or missing are excluded.
func Build(settings map[string]Setting) []types.Field {
	out := make([]types.Field, 0, len(CanonicalKeys))
	for _, key := range CanonicalKeys {
		s, ok := settings[key]
		if !ok || (s != Mandatory && s != Optional) {
			continue
		}
		out = append(out, types.Field{
			Key:      key,
			Label:    Label(key),
			Required: s == Mandatory,
		})
	}
	return out
}

// BuildRaw is Build for settings that have not been parsed yet.
// Unparseable settings degrade to absent.
func BuildRaw(raw map[string]string) []types.Field {
	settings := make(map[string]Setting, len(raw))
	for k, v := range raw {
		if s, ok := ParseSetting(v); ok {
			settings[k] = s
		}
	}
	return Build(settings)
}

// Label derives a display label by title-casing each underscore separated word.
func Label(key string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	words := strings.Split(key, "_")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// WellFormed reports whether a configuration can drive a form: it is present
// (an empty list is allowed) and has no duplicate or empty keys.
func WellFormed(fields []types.Field) bool {
	if fields == nil {
		return false
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Key == "" || seen[f.Key] {
			return false
		}
		seen[f.Key] = true
	}
	return true
}
