package commands

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// InputFieldType defines the type of input field
type InputFieldType int

const (
	InputTypeText    InputFieldType = iota // Free text input
	InputTypeNumber                        // Integer input
	InputTypeBoolean                       // Boolean/checkbox
	InputTypeSelect                        // Dropdown selection
)

// InputField describes one command parameter, generated from struct tags.
// The release forms build their huh fields from these.
type InputField struct {
	Name        string         // Field name from "form" tag
	Label       string         // Display label from "title" tag
	Type        InputFieldType // Field type (inferred from Go type or "type" tag)
	Required    bool           // Whether field is required (!optional)
	Default     string         // Default value from "default" tag
	Placeholder string         // Placeholder text shown in empty inputs
	Validation  string         // Validation rules from "validate" tag
}

// GenerateInputFields reads struct tags and creates InputField slice.
// Struct tags format:
//
//	Field type `form:"name" title:"Display" type:"input|select|confirm" validate:"rules" default:"val" optional:"true"`
func GenerateInputFields(argsStruct any) ([]InputField, error) {
	if argsStruct == nil {
		return nil, nil
	}

	val := reflect.ValueOf(argsStruct)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("argsStruct must be a struct or pointer to struct")
	}

	typ := val.Type()
	fields := []InputField{}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		formTag := field.Tag.Get("form")
		if formTag == "" {
			continue // Skip fields without form tag
		}

		titleTag := field.Tag.Get("title")
		if titleTag == "" {
			titleTag = field.Name
		}

		defaultVal := field.Tag.Get("default")

		placeholder := field.Tag.Get("placeholder")
		if placeholder == "" && defaultVal != "" {
			placeholder = defaultVal
		}

		fields = append(fields, InputField{
			Name:        formTag,
			Label:       titleTag,
			Type:        inferFieldType(field.Type, field.Tag.Get("type")),
			Required:    field.Tag.Get("optional") != "true",
			Default:     defaultVal,
			Placeholder: placeholder,
			Validation:  field.Tag.Get("validate"),
		})
	}

	return fields, nil
}

// inferFieldType determines InputFieldType from Go type and tag
func inferFieldType(goType reflect.Type, typeTag string) InputFieldType {
	// Explicit type tag takes precedence
	switch typeTag {
	case "input":
		return InputTypeText
	case "number":
		return InputTypeNumber
	case "select":
		return InputTypeSelect
	case "confirm":
		return InputTypeBoolean
	}

	switch goType.Kind() {
	case reflect.Bool:
		return InputTypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return InputTypeNumber
	case reflect.String:
		return InputTypeText
	default:
		return InputTypeText
	}
}

// ParseInlineArgs populates struct from a positional arg string.
// "value1 value2 value3" maps to tagged struct fields in order; optional
// fields fall back to their defaults when not provided.
func ParseInlineArgs(argsStruct any, argString string) error {
	if argsStruct == nil {
		return nil
	}

	val := reflect.ValueOf(argsStruct)
	if val.Kind() != reflect.Ptr {
		return fmt.Errorf("argsStruct must be a pointer to struct")
	}
	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("argsStruct must be a pointer to struct")
	}

	argString = strings.TrimSpace(argString)
	var args []string
	if argString != "" {
		args = strings.Fields(argString)
	}

	typ := val.Type()
	argIdx := 0

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		formTag := field.Tag.Get("form")
		if formTag == "" {
			continue
		}

		optional := field.Tag.Get("optional") == "true"
		defaultTag := field.Tag.Get("default")

		var argValue string
		if argIdx < len(args) {
			argValue = args[argIdx]
			argIdx++
		} else if optional && defaultTag != "" {
			argValue = defaultTag
		} else if optional {
			continue
		} else {
			return fmt.Errorf("missing required argument: %s", fieldTitle(field))
		}

		if err := setFieldValue(fieldVal, argValue); err != nil {
			return fmt.Errorf("invalid value for %s: %w", fieldTitle(field), err)
		}

		if validation := field.Tag.Get("validate"); validation != "" {
			if err := validateField(fieldVal, validation); err != nil {
				return fmt.Errorf("validation failed for %s: %w", fieldTitle(field), err)
			}
		}
	}

	return nil
}

func fieldTitle(field reflect.StructField) string {
	if title := field.Tag.Get("title"); title != "" {
		return title
	}
	return field.Name
}

// setFieldValue sets a reflect.Value from a string
func setFieldValue(fieldVal reflect.Value, value string) error {
	if !fieldVal.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch fieldVal.Kind() {
	case reflect.String:
		fieldVal.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intVal, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("must be an integer")
		}
		fieldVal.SetInt(intVal)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintVal, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("must be a positive integer")
		}
		fieldVal.SetUint(uintVal)
	case reflect.Bool:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("must be true or false")
		}
		fieldVal.SetBool(boolVal)
	default:
		return fmt.Errorf("unsupported field type: %s", fieldVal.Kind())
	}

	return nil
}

// validateField validates a field value against validation rules
func validateField(fieldVal reflect.Value, validation string) error {
	for _, rule := range strings.Split(validation, ",") {
		rule = strings.TrimSpace(rule)

		switch {
		case rule == "required":
			if fieldVal.IsZero() {
				return fmt.Errorf("required")
			}
		case strings.HasPrefix(rule, "min="):
			min, err := strconv.ParseInt(strings.TrimPrefix(rule, "min="), 10, 64)
			if err != nil {
				continue
			}
			switch fieldVal.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				if fieldVal.Int() < min {
					return fmt.Errorf("must be >= %d", min)
				}
			}
		case strings.HasPrefix(rule, "max="):
			max, err := strconv.ParseInt(strings.TrimPrefix(rule, "max="), 10, 64)
			if err != nil {
				continue
			}
			switch fieldVal.Kind() {
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				if fieldVal.Int() > max {
					return fmt.Errorf("must be <= %d", max)
				}
			}
		}
	}

	return nil
}
