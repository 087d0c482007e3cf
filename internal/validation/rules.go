// Package validation provides declarative field and form validation, composed
// into per-entity schemas.
package validation

import (
	"context"
	"regexp"
)

// RuleType identifies a built-in rule.
type RuleType string

// Built-in rule types.
const (
	TypeRequired  RuleType = "required"
	TypeEmail     RuleType = "email"
	TypePhone     RuleType = "phone"
	TypeMinLength RuleType = "minLength"
	TypeMaxLength RuleType = "maxLength"
	TypeMin       RuleType = "min"
	TypeMax       RuleType = "max"
	TypePattern   RuleType = "pattern"
	TypeCustom    RuleType = "custom"
	TypeFileSize  RuleType = "fileSize"
	TypeFileType  RuleType = "fileType"
	TypeUnique    RuleType = "unique"
)

// Default messages. Schemas rely on these exact strings; changing one changes
// what forms show inline.
const (
	MsgRequired     = "This field is required"
	MsgInvalidEmail = "Please enter a valid email address"
	MsgInvalidPhone = "Please enter a valid phone number"
	MsgTooShort     = "Value is too short"
	MsgTooLong      = "Value is too long"
	MsgTooSmall     = "Value is too small"
	MsgTooLarge     = "Value is too large"
	MsgBadPattern   = "Value has an invalid format"
	MsgFileTooLarge = "File is too large"
	MsgBadFileType  = "File type is not allowed"
	MsgNotUnique    = "Value is already in use"
	MsgInvalid      = "Value is invalid"
)

// Predicate is a custom check receiving the field value and the whole form
// data, enabling cross-field rules. It may do async work (uniqueness lookups)
// and reports true when the value passes.
type Predicate func(ctx context.Context, value any, form map[string]any) (bool, error)

// Rule is one validation constraint on a field.
type Rule struct {
	Type    RuleType
	Value   any // rule parameter: length, bound, pattern, predicate...
	Message string
}

// File is the shape file-upload fields validate against.
type File struct {
	Name string
	Size int64 // bytes
}

// Required fails on nil, empty or all-whitespace strings, and empty slices.
func Required() Rule {
	return Rule{Type: TypeRequired, Message: MsgRequired}
}

// Email checks basic address shape.
func Email() Rule {
	return Rule{Type: TypeEmail, Message: MsgInvalidEmail}
}

// Phone accepts digits, spaces, hyphens, parentheses and a leading +.
func Phone() Rule {
	return Rule{Type: TypePhone, Message: MsgInvalidPhone}
}

// MinLength bounds string length from below. Empty values pass; combine with
// Required when the field is mandatory.
func MinLength(n int) Rule {
	return Rule{Type: TypeMinLength, Value: n, Message: MsgTooShort}
}

// MaxLength bounds string length from above.
func MaxLength(n int) Rule {
	return Rule{Type: TypeMaxLength, Value: n, Message: MsgTooLong}
}

// Min bounds a numeric value from below.
func Min(n float64) Rule {
	return Rule{Type: TypeMin, Value: n, Message: MsgTooSmall}
}

// Max bounds a numeric value from above.
func Max(n float64) Rule {
	return Rule{Type: TypeMax, Value: n, Message: MsgTooLarge}
}

// Pattern matches a string against a compiled regular expression.
func Pattern(re *regexp.Regexp) Rule {
	return Rule{Type: TypePattern, Value: re, Message: MsgBadPattern}
}

// Custom wraps an arbitrary predicate.
func Custom(fn Predicate, message string) Rule {
	if message == "" {
		message = MsgInvalid
	}
	return Rule{Type: TypeCustom, Value: fn, Message: message}
}

// FileSize bounds an uploaded file's size in bytes.
func FileSize(maxBytes int64) Rule {
	return Rule{Type: TypeFileSize, Value: maxBytes, Message: MsgFileTooLarge}
}

// FileType restricts an uploaded file's extension.
func FileType(extensions ...string) Rule {
	return Rule{Type: TypeFileType, Value: extensions, Message: MsgBadFileType}
}

// Unique wraps an async predicate that reports whether the value is free.
func Unique(fn Predicate) Rule {
	return Rule{Type: TypeUnique, Value: fn, Message: MsgNotUnique}
}

// WithMessage returns a copy of the rule with a custom message.
func (r Rule) WithMessage(message string) Rule {
	r.Message = message
	return r
}
