package domain

import "encoding/json"

// FieldType is the closed set of form field kinds the validator knows.
type FieldType string

const (
	FieldText  FieldType = "text"
	FieldEmail FieldType = "email"
	FieldTel   FieldType = "tel"
)

// FieldTypes lists every FieldType, in declaration order.
var FieldTypes = []FieldType{FieldText, FieldEmail, FieldTel}

// ParseFieldType maps a form "type" attribute to a FieldType.
func ParseFieldType(s string) (FieldType, bool) {
	for _, t := range FieldTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Status codes carried by a ValidationResult.
const (
	CodeOK         = 200
	CodeBadRequest = 400
)

// Validation failure messages.
const (
	MsgMandatoryField = "Mandatory field"
	MsgInvalidEmail   = "Invalid email address"
	MsgInvalidPhone   = "Invalid phone number"
)

// FieldValue is either a single (scalar) value or a list of values,
// e.g. a multi-select.
type FieldValue struct {
	scalar string
	list   []string
	isList bool
}

// Scalar wraps a single form value.
func Scalar(s string) FieldValue {
	return FieldValue{scalar: s}
}

// List wraps a multi-valued form field.
func List(values ...string) FieldValue {
	return FieldValue{list: append([]string(nil), values...), isList: true}
}

// IsList reports whether the value is a sequence.
func (v FieldValue) IsList() bool { return v.isList }

// String returns the scalar value. It is empty for lists.
func (v FieldValue) String() string { return v.scalar }

// Values returns a copy of the list values, or the scalar as a one-element slice.
func (v FieldValue) Values() []string {
	if v.isList {
		return append([]string(nil), v.list...)
	}
	return []string{v.scalar}
}

// IsEmpty reports an empty string or an empty list.
func (v FieldValue) IsEmpty() bool {
	if v.isList {
		return len(v.list) == 0
	}
	return v.scalar == ""
}

// MarshalJSON encodes a scalar as a JSON string and a list as an array.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.isList {
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return json.Marshal(v.scalar)
}

// ValidationResult is the outcome of validating one field.
// Success, Code == CodeOK, Message == "" and Data != nil always agree.
type ValidationResult struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    *FieldValue `json:"data"`
}

// Valid builds a successful result holding the validated value.
func Valid(v FieldValue) ValidationResult {
	return ValidationResult{Success: true, Code: CodeOK, Data: &v}
}

// Invalid builds a failed result.
func Invalid(message string) ValidationResult {
	return ValidationResult{Code: CodeBadRequest, Message: message}
}
