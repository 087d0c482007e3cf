package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// FieldResult is the outcome of validating one value.
type FieldResult struct {
	IsValid bool
	Error   string // empty when valid
}

// FormResult is the outcome of validating a whole form: one error per
// failing field.
type FormResult struct {
	IsValid bool
	Errors  map[string]string
}

// Schema maps field names to their rule lists. A schema is the canonical
// definition of "valid" for its entity.
type Schema map[string][]Rule

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s()-]{7,20}$`)
)

// ValidateField evaluates rules in order and stops at the first failure.
func ValidateField(ctx context.Context, value any, rules []Rule, form map[string]any) (FieldResult, error) {
	for _, rule := range rules {
		ok, err := check(ctx, rule, value, form)
		if err != nil {
			return FieldResult{}, err
		}
		if !ok {
			return FieldResult{IsValid: false, Error: rule.Message}, nil
		}
	}
	return FieldResult{IsValid: true}, nil
}

// ValidateForm evaluates every field independently: it never short-circuits
// across fields, so a form missing three values reports three errors.
func ValidateForm(ctx context.Context, data map[string]any, schema Schema) (FormResult, error) {
	errors := make(map[string]string)
	for field, rules := range schema {
		res, err := ValidateField(ctx, data[field], rules, data)
		if err != nil {
			return FormResult{}, fmt.Errorf("validate %s: %w", field, err)
		}
		if !res.IsValid {
			errors[field] = res.Error
		}
	}
	return FormResult{IsValid: len(errors) == 0, Errors: errors}, nil
}

func check(ctx context.Context, rule Rule, value any, form map[string]any) (bool, error) {
	switch rule.Type {
	case TypeRequired:
		return !isEmpty(value), nil

	case TypeEmail:
		s, ok := value.(string)
		if !ok || s == "" {
			return s == "", nil // emptiness is Required's business
		}
		return emailPattern.MatchString(s), nil

	case TypePhone:
		s, ok := value.(string)
		if !ok || s == "" {
			return s == "", nil
		}
		return phonePattern.MatchString(s), nil

	case TypeMinLength:
		s, _ := value.(string)
		if s == "" {
			return true, nil
		}
		return len([]rune(s)) >= rule.Value.(int), nil

	case TypeMaxLength:
		s, _ := value.(string)
		return len([]rune(s)) <= rule.Value.(int), nil

	case TypeMin:
		n, ok := toNumber(value)
		if !ok {
			return true, nil
		}
		return n >= rule.Value.(float64), nil

	case TypeMax:
		n, ok := toNumber(value)
		if !ok {
			return true, nil
		}
		return n <= rule.Value.(float64), nil

	case TypePattern:
		s, ok := value.(string)
		if !ok || s == "" {
			return true, nil
		}
		return rule.Value.(*regexp.Regexp).MatchString(s), nil

	case TypeCustom, TypeUnique:
		fn, ok := rule.Value.(Predicate)
		if !ok {
			return false, fmt.Errorf("rule %s carries no predicate", rule.Type)
		}
		return fn(ctx, value, form)

	case TypeFileSize:
		f, ok := value.(File)
		if !ok {
			return true, nil
		}
		return f.Size <= rule.Value.(int64), nil

	case TypeFileType:
		f, ok := value.(File)
		if !ok {
			return true, nil
		}
		name := strings.ToLower(f.Name)
		for _, ext := range rule.Value.([]string) {
			if strings.HasSuffix(name, strings.ToLower(ext)) {
				return true, nil
			}
		}
		return false, nil

	default:
		return false, fmt.Errorf("unknown rule type %q", rule.Type)
	}
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}
