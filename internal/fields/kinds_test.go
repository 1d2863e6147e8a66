package fields

import (
	"testing"

	"github.com/jonathan/hiring-portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		key  string
		want Kind
	}{
		{KeyFullName, KindText},
		{KeyEmail, KindEmail},
		{KeyPhone, KindPhone},
		{KeyGender, KindChoice},
		{KeyDomicile, KindText},
		{KeyLinkedIn, KindText},
		{KeyDateOfBirth, KindDate},
		{KeyPhoto, KindCapture},
		{"anything_else", KindText},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFor(tt.key))
		})
	}
}

func TestKind_Payload(t *testing.T) {
	assert.Nil(t, KindCapture.Payload(""))
	assert.Equal(t, "data:image/png;base64,AAAA", KindCapture.Payload("data:image/png;base64,AAAA"))
	assert.Equal(t, "", KindText.Payload(""))
	assert.Equal(t, "Male", KindChoice.Payload("Male"))
}

func TestKind_IsEmpty_OnlyEmptyString(t *testing.T) {
	assert.True(t, KindText.IsEmpty(""))
	assert.False(t, KindText.IsEmpty("   "))
	assert.False(t, KindEmail.IsEmpty(" "))
	assert.True(t, KindCapture.IsEmpty(""))
}

func TestKind_Options(t *testing.T) {
	assert.Equal(t, []string{"Male", "Female"}, KindChoice.Options())
	assert.Nil(t, KindText.Options())

	opts := KindChoice.Options()
	opts[0] = "changed"
	assert.Equal(t, "Male", KindChoice.Options()[0])
}

func TestDescribe(t *testing.T) {
	got := Describe([]types.Field{
		{Key: "full_name", Label: "Nama Lengkap", Required: true},
		{Key: "gender", Label: "Gender"},
		{Key: "photo", Label: "Photo"},
	})

	require.Len(t, got, 3)
	assert.Equal(t, KindText, got[0].Kind)
	assert.Equal(t, "text", got[0].InputType)
	assert.True(t, got[0].Required)
	assert.Equal(t, KindChoice, got[1].Kind)
	assert.Equal(t, "radio", got[1].InputType)
	assert.Equal(t, GenderOptions, got[1].Options)
	assert.Equal(t, KindCapture, got[2].Kind)
}
