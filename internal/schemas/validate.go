// Package schemas validates API payloads against the embedded JSON Schemas.
package schemas

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	rootschemas "github.com/jonathan/jobboard/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Schema names, matching <name>.schema.json in the schemas directory.
const (
	JobNew    = "job_new"
	JobUpdate = "job_update"
	JobSearch = "job_search"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	cacheMu sync.Mutex
	cache   = map[string]*gojsonschema.Schema{}
)

// load compiles an embedded schema once and caches it.
func load(name string) (*gojsonschema.Schema, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[name]; ok {
		return s, nil
	}

	data, err := fs.ReadFile(rootschemas.FS, name+".schema.json")
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Cause: err}
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Cause: err}
	}

	cache[name] = s
	return s, nil
}

// Validate checks a JSON document against the named schema. It returns a
// *ValidationError listing every violation, or a *SchemaLoadError when the
// document or schema cannot be read.
func Validate(name string, document []byte) error {
	return validate(name, gojsonschema.NewBytesLoader(document))
}

// ValidateValue checks an already decoded Go value against the named schema.
func ValidateValue(name string, value any) error {
	return validate(name, gojsonschema.NewGoLoader(value))
}

func validate(name string, doc gojsonschema.JSONLoader) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return &SchemaLoadError{Name: name, Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
