// Package schemas provides JSON Schema validation for structured LLM output.
// Schemas are embedded at compile time.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, fe := range ve.Errors {
		sb.WriteString(fmt.Sprintf("\n  %s: %s", fe.Field, fe.Message))
	}
	return sb.String()
}

// Validate checks a JSON document against an embedded schema file
// (e.g., "skills.schema.json"). Returns a *ValidationError when the document
// is well-formed JSON that violates the schema.
func Validate(schemaFile string, document []byte) error {
	schemaBytes, err := schemaFiles.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", schemaFile, err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		ve := &ValidationError{}
		for _, desc := range result.Errors() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return ve
	}

	return nil
}
