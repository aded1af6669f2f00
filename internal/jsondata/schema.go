package jsondata

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// SchemaViolation is one failed constraint. Path is a JSON pointer into the
// document ("" for the root).
type SchemaViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// SchemaReport is the outcome of validating a document against a schema.
type SchemaReport struct {
	Valid  bool              `json:"valid"`
	Errors []SchemaViolation `json:"errors,omitempty"`
}

const schemaResource = "devkit://schema.json"

// ValidateSchema checks document against a JSON Schema. Malformed input or
// a schema that does not compile fails with SyntaxError; constraint
// failures are reported in the result.
func ValidateSchema(schema, document string) (SchemaReport, error) {
	const op = "json.schema"
	if err := checkSyntax(schema); err != nil {
		return SchemaReport{}, err
	}
	if err := checkSyntax(document); err != nil {
		return SchemaReport{}, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, strings.NewReader(schema)); err != nil {
		return SchemaReport{}, toolerr.Syntax(op, "invalid schema: "+err.Error(), -1, err)
	}
	sch, err := compiler.Compile(schemaResource)
	if err != nil {
		return SchemaReport{}, toolerr.Syntax(op, "invalid schema: "+err.Error(), -1, err)
	}

	dec := json.NewDecoder(strings.NewReader(document))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return SchemaReport{}, toolerr.Syntax(op, err.Error(), -1, err)
	}

	err = sch.Validate(doc)
	if err == nil {
		return SchemaReport{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return SchemaReport{}, toolerr.Wrap(toolerr.KindInvalidArgument, op, "validate", err)
	}
	report := SchemaReport{Valid: false}
	collectViolations(ve, &report.Errors)
	sort.SliceStable(report.Errors, func(i, j int) bool {
		return report.Errors[i].Path < report.Errors[j].Path
	})
	return report, nil
}

// collectViolations keeps only leaf causes; parents repeat their summary.
func collectViolations(ve *jsonschema.ValidationError, out *[]SchemaViolation) {
	if len(ve.Causes) == 0 {
		*out = append(*out, SchemaViolation{Path: ve.InstanceLocation, Message: ve.Message})
		return
	}
	for _, c := range ve.Causes {
		collectViolations(c, out)
	}
}
