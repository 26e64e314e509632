// Package validator checks decoded weatherstack documents against the static
// schema manifests in internal/models.
//
// Validation runs in three layers: structure (required paths exist), types
// (each required field carries its declared semantic type) and location match
// (the place returned is the place expected). Every function is pure, stops at
// the first violation and returns an *apierr.Error.
package validator

import (
	"encoding/json"
	"fmt"
	"strings"

	"weatherstack-check/internal/apierr"
	"weatherstack-check/internal/models"
)

// ValidateStructure confirms every section of schema and every required field
// inside it is present.
func ValidateStructure(payload map[string]any, schema models.Schema) error {
	for _, section := range schema.Sections {
		raw, ok := payload[section.Key]
		if !ok {
			return missing(section.Key)
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			return wrongType(section.Key, models.TypeObject, raw)
		}

		if !section.Dated {
			if err := checkPresence(obj, section.Key, section.Fields); err != nil {
				return err
			}
			continue
		}

		if len(obj) == 0 {
			return apierr.Field(apierr.KindResponseStructure, section.Key, "section %q has no dated entries", section.Key)
		}
		for date, entry := range obj {
			path := section.Key + "." + date
			entryObj, ok := entry.(map[string]any)
			if !ok {
				return wrongType(path, models.TypeObject, entry)
			}
			if err := checkPresence(entryObj, path, section.Fields); err != nil {
				return err
			}
		}
	}

	return nil
}

// ValidateTypes confirms every required field carries its declared type.
// It assumes ValidateStructure already passed and reports a missing path
// otherwise.
func ValidateTypes(payload map[string]any, schema models.Schema) error {
	for _, section := range schema.Sections {
		obj, ok := payload[section.Key].(map[string]any)
		if !ok {
			return missing(section.Key)
		}

		if !section.Dated {
			if err := checkTypes(obj, section.Key, section.Fields); err != nil {
				return err
			}
			continue
		}

		for date, entry := range obj {
			entryObj, _ := entry.(map[string]any)
			if err := checkTypes(entryObj, section.Key+"."+date, section.Fields); err != nil {
				return err
			}
		}
	}

	return nil
}

// ValidateBasicResponseStructure runs the structure and type layers.
func ValidateBasicResponseStructure(payload map[string]any, schema models.Schema) error {
	if err := ValidateStructure(payload, schema); err != nil {
		return err
	}
	return ValidateTypes(payload, schema)
}

// ValidateLocationPresence returns the location name of the response.
func ValidateLocationPresence(payload map[string]any) (string, error) {
	location, ok := payload["location"].(map[string]any)
	if !ok {
		return "", missing("location")
	}
	raw, ok := location["name"]
	if !ok {
		return "", missing("location.name")
	}
	if err := checkType("location.name", models.TypeNonEmptyString, raw); err != nil {
		return "", err
	}
	return raw.(string), nil
}

// ValidateLocationMatch compares location.name and location.country with the
// expected values using exact string equality. An empty expectedCountry skips
// the country comparison.
func ValidateLocationMatch(payload map[string]any, expectedLocation, expectedCountry string) error {
	name, err := ValidateLocationPresence(payload)
	if err != nil {
		return err
	}
	if name != expectedLocation {
		return apierr.Field(apierr.KindLocationMismatch, "location.name",
			"expected location %q, got %q", expectedLocation, name)
	}

	if expectedCountry == "" {
		return nil
	}

	location := payload["location"].(map[string]any)
	raw, ok := location["country"]
	if !ok {
		return missing("location.country")
	}
	if err := checkType("location.country", models.TypeNonEmptyString, raw); err != nil {
		return err
	}
	if country := raw.(string); country != expectedCountry {
		return apierr.Field(apierr.KindLocationMismatch, "location.country",
			"expected country %q, got %q", expectedCountry, country)
	}

	return nil
}

// ValidateTemperatureField checks a single section for a numeric temperature.
func ValidateTemperatureField(section map[string]any, sectionName string) error {
	path := sectionName + ".temperature"
	raw, ok := section["temperature"]
	if !ok {
		return missing(path)
	}
	return checkType(path, models.TypeNumber, raw)
}

func checkPresence(obj map[string]any, prefix string, fields []models.Field) error {
	for _, f := range fields {
		if _, ok := obj[f.Path]; !ok {
			return missing(prefix + "." + f.Path)
		}
	}
	return nil
}

func checkTypes(obj map[string]any, prefix string, fields []models.Field) error {
	for _, f := range fields {
		raw, ok := obj[f.Path]
		if !ok {
			return missing(prefix + "." + f.Path)
		}
		if err := checkType(prefix+"."+f.Path, f.Type, raw); err != nil {
			return err
		}
	}
	return nil
}

func checkType(path string, want models.FieldType, v any) error {
	switch want {
	case models.TypeString:
		if _, ok := v.(string); ok {
			return nil
		}
	case models.TypeNonEmptyString:
		if s, ok := v.(string); ok {
			if strings.TrimSpace(s) == "" {
				return apierr.Field(apierr.KindResponseStructure, path, "field %q must be a non-empty string", path)
			}
			return nil
		}
	case models.TypeNumber:
		if isNumber(v) {
			return nil
		}
	case models.TypeStringList:
		list, ok := v.([]any)
		if !ok {
			break
		}
		if len(list) == 0 {
			return apierr.Field(apierr.KindResponseStructure, path, "field %q must not be empty", path)
		}
		for i, item := range list {
			if _, ok := item.(string); !ok {
				return apierr.Field(apierr.KindResponseStructure, fmt.Sprintf("%s[%d]", path, i),
					"expected string, got %s", typeName(item))
			}
		}
		return nil
	case models.TypeObject:
		if _, ok := v.(map[string]any); ok {
			return nil
		}
	}

	return wrongType(path, want, v)
}

func isNumber(v any) bool {
	switch n := v.(type) {
	case json.Number:
		_, err := n.Float64()
		return err == nil
	case float64, float32, int, int64, int32:
		return true
	}
	return false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, float32, int, int64, int32:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

func missing(path string) error {
	return apierr.Field(apierr.KindResponseStructure, path, "required key %q is missing", path)
}

func wrongType(path string, want models.FieldType, got any) error {
	return apierr.Field(apierr.KindResponseStructure, path,
		"field %q: expected %s, got %s", path, want, typeName(got))
}
