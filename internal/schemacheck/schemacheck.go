// Package schemacheck verifies rendered schemas: a document must always
// validate against the schema inferred from it. The CLI exposes this as
// --check and the renderer tests lean on it.
package schemacheck

import (
	"encoding/json"
	"fmt"
	"strings"

	stderrors "errors"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/typeweaver/typeweaver/internal/errors"
)

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// Check compiles schemaJSON and validates document (raw JSON bytes)
// against it. A nil return means the document satisfies the schema.
func Check(schemaJSON string, document []byte) error {
	var schemaValue any
	if err := json.Unmarshal([]byte(schemaJSON), &schemaValue); err != nil {
		return errors.NewRenderError("rendered schema is not valid JSON", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return errors.NewRenderError("failed to load rendered schema", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return errors.NewRenderError("rendered schema does not compile", err)
	}

	var instance any
	if err := json.Unmarshal(document, &instance); err != nil {
		return errors.NewInputError("document is not valid JSON", err)
	}

	if err := compiled.Validate(instance); err != nil {
		msgs := validationMessages(err)
		return fmt.Errorf("document does not satisfy its inferred schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// validationMessages flattens a ValidationError tree into readable
// per-location messages.
func validationMessages(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !stderrors.As(err, &validationErr) {
		return []string{err.Error()}
	}
	var msgs []string
	collect(validationErr, &msgs)
	if len(msgs) == 0 {
		msgs = []string{validationErr.Error()}
	}
	return msgs
}

// collect gathers leaf causes; branch nodes only restate their children.
func collect(err *jsonschema.ValidationError, msgs *[]string) {
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		location := "/" + strings.Join(err.InstanceLocation, "/")
		if location == "/" {
			*msgs = append(*msgs, msg)
		} else {
			*msgs = append(*msgs, fmt.Sprintf("%s: %s", location, msg))
		}
	}
	for _, cause := range err.Causes {
		collect(cause, msgs)
	}
}
