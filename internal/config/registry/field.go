// Package registry provides the static field registry for the configuration
// dashboard.
//
// The registry maintains descriptors of every configurable field with its
// type, default value, storage paths (environment key and/or YAML path), and
// metadata. Descriptors are registered once at startup and never mutated.
package registry

import "fmt"

// Field describes a single configurable setting.
type Field struct {
	// ID is the dot-separated field identifier (e.g., "interface.webSearch").
	ID string

	// Type is the field's data type.
	Type FieldType

	// Default is the value the field inherits when not explicitly set.
	Default any

	// Description is human-readable documentation.
	Description string

	// Tab groups the field in the dashboard (e.g., "email", "interface").
	Tab string

	// YAMLPath is the dot-separated path in the YAML config file.
	// Empty for environment-only fields.
	YAMLPath string

	// EnvKey is the environment variable name. Empty for YAML-only fields.
	EnvKey string

	// Enum lists allowed values for enum types.
	Enum []any

	// Minimum for numeric types (nil means no minimum).
	Minimum *float64

	// Maximum for numeric types (nil means no maximum).
	Maximum *float64

	// Sensitive marks secrets that must be masked in reports.
	Sensitive bool

	// Tags for filtering/grouping fields.
	Tags []string
}

// StoragePath returns the dot-separated path where the field's value lives
// in the configuration record: the YAML path when present, otherwise the
// field ID itself.
func (f *Field) StoragePath() string {
	if f.YAMLPath != "" {
		return f.YAMLPath
	}
	return f.ID
}

// Validate checks if a value is valid for this field.
// Validation is advisory; edit operations never call it.
func (f *Field) Validate(value any) error {
	if err := f.validateType(value); err != nil {
		return err
	}

	if len(f.Enum) > 0 {
		if !containsValue(f.Enum, value) {
			return fmt.Errorf("value must be one of: %v", f.Enum)
		}
	}

	if f.Type == TypeInt || f.Type == TypeFloat {
		if err := f.validateRange(value); err != nil {
			return err
		}
	}

	return nil
}

// validateType checks if the value matches the expected type.
func (f *Field) validateType(value any) error {
	switch f.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case TypeInt:
		switch value.(type) {
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			// Valid
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case TypeFloat:
		switch value.(type) {
		case float32, float64, int, int64:
			// Valid (integers are acceptable for float)
		default:
			return fmt.Errorf("expected number, got %T", value)
		}
	case TypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case TypeArray:
		switch value.(type) {
		case []any, []string, []int, []int64, []float64:
			// Valid
		default:
			return fmt.Errorf("expected array, got %T", value)
		}
	case TypeObject:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	case TypeEnum:
		// Enum membership checked separately
	}
	return nil
}

// validateRange checks if a numeric value is within the allowed range.
func (f *Field) validateRange(value any) error {
	var v float64
	switch n := value.(type) {
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case float32:
		v = float64(n)
	case float64:
		v = n
	default:
		return nil // Non-numeric, skip range check
	}

	if f.Minimum != nil && v < *f.Minimum {
		return fmt.Errorf("value %v is less than minimum %v", value, *f.Minimum)
	}
	if f.Maximum != nil && v > *f.Maximum {
		return fmt.Errorf("value %v is greater than maximum %v", value, *f.Maximum)
	}
	return nil
}

// FieldType represents the data type of a field.
type FieldType uint8

const (
	// TypeString represents a string value.
	TypeString FieldType = iota
	// TypeInt represents an integer value.
	TypeInt
	// TypeFloat represents a floating-point value.
	TypeFloat
	// TypeBool represents a boolean value.
	TypeBool
	// TypeArray represents an array value.
	TypeArray
	// TypeObject represents an object/map value.
	TypeObject
	// TypeEnum represents a value from a fixed set.
	TypeEnum
)

// String returns the string representation of the type.
func (t FieldType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBool:
		return "boolean"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// containsValue checks if a slice contains a value.
func containsValue(slice []any, value any) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}

// MinValue creates a pointer to a float64 for use as Minimum.
func MinValue(v float64) *float64 {
	return &v
}

// MaxValue creates a pointer to a float64 for use as Maximum.
func MaxValue(v float64) *float64 {
	return &v
}
