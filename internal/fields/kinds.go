package fields

import (
	"github.com/jonathan/hiring-portal/internal/types"
)

// Kind is the closed set of input controls a field can be rendered with.
type Kind string

const (
	KindText    Kind = "text"
	KindEmail   Kind = "email"
	KindPhone   Kind = "phone"
	KindChoice  Kind = "choice"
	KindDate    Kind = "date"
	KindCapture Kind = "capture"
)

// GenderOptions are the choices offered for the gender field.
var GenderOptions = []string{"Male", "Female"}

// kindSpec carries the per-kind behaviour.
type kindSpec struct {
	inputType string
	options   []string
	// nullable kinds submit null instead of an empty string
	nullable bool
}

var specs = map[Kind]kindSpec{
	KindText:    {inputType: "text"},
	KindEmail:   {inputType: "email"},
	KindPhone:   {inputType: "tel"},
	KindChoice:  {inputType: "radio", options: GenderOptions},
	KindDate:    {inputType: "date"},
	KindCapture: {inputType: "capture", nullable: true},
}

var kindByKey = map[string]Kind{
	KeyEmail:       KindEmail,
	KeyPhone:       KindPhone,
	KeyGender:      KindChoice,
	KeyDateOfBirth: KindDate,
	KeyPhoto:       KindCapture,
}

// KindFor returns the kind used for a field key. Keys without a dedicated
// control are free text.
func KindFor(key string) Kind {
	if k, ok := kindByKey[key]; ok {
		return k
	}
	return KindText
}

// InputType is the HTML-style input hint for the kind.
func (k Kind) InputType() string {
	return specs[k].inputType
}

// Options lists the allowed values of a choice kind; nil for the others.
func (k Kind) Options() []string {
	opts := specs[k].options
	if opts == nil {
		return nil
	}
	return append([]string(nil), opts...)
}

// IsEmpty reports whether a value counts as missing for a required check.
func (k Kind) IsEmpty(value string) bool {
	return value == ""
}

// Payload converts a stored value into its submitted representation.
func (k Kind) Payload(value string) any {
	if specs[k].nullable && value == "" {
		return nil
	}
	return value
}

// Descriptor is a configured field paired with the control that renders it.
type Descriptor struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Required  bool     `json:"required"`
	Kind      Kind     `json:"kind"`
	InputType string   `json:"input_type"`
	Options   []string `json:"options,omitempty"`
}

// Describe resolves the kind of every field once, at configuration time.
func Describe(fields []types.Field) []Descriptor {
	out := make([]Descriptor, 0, len(fields))
	for _, f := range fields {
		k := KindFor(f.Key)
		out = append(out, Descriptor{
			Key:       f.Key,
			Label:     f.Label,
			Required:  f.Required,
			Kind:      k,
			InputType: k.InputType(),
			Options:   k.Options(),
		})
	}
	return out
}
