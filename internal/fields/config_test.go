package fields

import (
	"testing"

	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keysOf(fields []types.Field) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	return keys
}

func TestBuild_DefaultSettings(t *testing.T) {
	got := Build(DefaultSettings())

	require.Len(t, got, len(CanonicalKeys))
	assert.Equal(t, CanonicalKeys, keysOf(got))
	assert.Equal(t, types.Field{Key: "full_name", Label: "Full Name", Required: true}, got[0])
	assert.Equal(t, types.Field{Key: "date_of_birth", Label: "Date Of Birth", Required: false}, got[6])
}

func TestBuild_OffIsExcluded(t *testing.T) {
	settings := DefaultSettings()
	settings[KeyPhone] = Off
	settings[KeyPhoto] = Off

	got := Build(settings)

	assert.NotContains(t, keysOf(got), KeyPhone)
	assert.NotContains(t, keysOf(got), KeyPhoto)
	assert.Len(t, got, len(CanonicalKeys)-2)
}

func TestBuild_RequiredIffMandatory(t *testing.T) {
	for _, key := range CanonicalKeys {
		for _, s := range []Setting{Mandatory, Optional, Off} {
			got := Build(map[string]Setting{key: s})
			if s == Off {
				assert.Empty(t, got, "key %s set to off must not appear", key)
				continue
			}
			require.Len(t, got, 1)
			assert.Equal(t, s == Mandatory, got[0].Required, "key %s setting %s", key, s)
		}
	}
}

func TestBuild_PreservesCanonicalOrder(t *testing.T) {
	// Go maps have no order, so build the same settings several times with
	// insertion in reverse order and check the output is canonical each time.
	for i := 0; i < 10; i++ {
		settings := make(map[string]Setting)
		for j := len(CanonicalKeys) - 1; j >= 0; j-- {
			settings[CanonicalKeys[j]] = Optional
		}
		assert.Equal(t, CanonicalKeys, keysOf(Build(settings)))
	}
}

func TestBuild_IgnoresUnknownAndUnsetKeys(t *testing.T) {
	got := Build(map[string]Setting{
		"favourite_color": Mandatory,
		KeyEmail:          Mandatory,
		KeyGender:         Setting("bogus"),
	})

	assert.Equal(t, []string{KeyEmail}, keysOf(got))
}

func TestBuild_EmptySettings(t *testing.T) {
	got := Build(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.True(t, WellFormed(got))
}

func TestBuildRaw(t *testing.T) {
	got := BuildRaw(map[string]string{
		"full_name": " Mandatory ",
		"email":     "optional",
		"phone":     "off",
		"gender":    "sometimes",
	})

	require.Len(t, got, 2)
	assert.Equal(t, types.Field{Key: "full_name", Label: "Full Name", Required: true}, got[0])
	assert.Equal(t, types.Field{Key: "email", Label: "Email", Required: false}, got[1])
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"full_name":     "Full Name",
		"email":         "Email",
		"linkedin":      "Linkedin",
		"date_of_birth": "Date Of Birth",
		"photo":         "Photo",
	}
	for key, want := range tests {
		assert.Equal(t, want, Label(key), key)
	}
}

func TestParseSetting(t *testing.T) {
	s, ok := ParseSetting("MANDATORY")
	assert.True(t, ok)
	assert.Equal(t, Mandatory, s)

	_, ok = ParseSetting("")
	assert.False(t, ok)
}

func TestWellFormed(t *testing.T) {
	assert.False(t, WellFormed(nil))
	assert.True(t, WellFormed([]types.Field{}))
	assert.True(t, WellFormed([]types.Field{{Key: "email"}, {Key: "phone"}}))
	assert.False(t, WellFormed([]types.Field{{Key: "email"}, {Key: "email"}}))
	assert.False(t, WellFormed([]types.Field{{Key: ""}}))
}
