package toolkit

import (
	"github.com/RowanDark/devkit/internal/jsondata"
)

type indentParams struct {
	Indent int `json:"indent" validate:"gte=0,lte=10" jsonschema:"minimum=0,maximum=10,default=2"`
}

type pathParams struct {
	Path string `json:"path" validate:"required" jsonschema:"required,description=gjson path syntax"`
}

type setParams struct {
	Path  string `json:"path" validate:"required" jsonschema:"required"`
	Value string `json:"value" validate:"required" jsonschema:"required,description=Raw JSON value to store"`
}

type schemaParams struct {
	Schema string `json:"schema" validate:"required" jsonschema:"required,description=JSON Schema document"`
}

func init() {
	format := newOp("json_format", CategoryJSON, "Pretty-print JSON",
		indentParams{Indent: 2},
		func(in []byte, p indentParams) ([]byte, error) {
			return text(jsondata.Format(string(in), p.Indent))
		})
	minify := simpleOp("json_minify", CategoryJSON, "Remove insignificant JSON whitespace",
		func(in []byte) ([]byte, error) {
			return text(jsondata.Minify(string(in)))
		})
	pair(format, minify)

	validateJSON := simpleOp("json_validate", CategoryJSON, "Report whether input is valid JSON",
		func(in []byte) ([]byte, error) {
			return jsonResult(jsondata.Validate(string(in)))
		})

	escape := simpleOp("json_escape", CategoryJSON, "Quote text as a JSON string literal",
		func(in []byte) ([]byte, error) {
			return []byte(jsondata.Escape(string(in))), nil
		})
	unescape := simpleOp("json_unescape", CategoryJSON, "Unquote a JSON string literal",
		func(in []byte) ([]byte, error) {
			return text(jsondata.Unescape(string(in)))
		})
	pair(escape, unescape)

	stats := simpleOp("json_stats", CategoryJSON, "Count JSON nodes by type and measure depth",
		func(in []byte) ([]byte, error) {
			s, err := jsondata.GetStatistics(string(in))
			if err != nil {
				return nil, err
			}
			return jsonResult(s)
		})

	query := newOp("json_query", CategoryJSON, "Look up a value by path",
		pathParams{},
		func(in []byte, p pathParams) ([]byte, error) {
			r, err := jsondata.Query(string(in), p.Path)
			if err != nil {
				return nil, err
			}
			return jsonResult(r)
		})
	set := newOp("json_set", CategoryJSON, "Set the value at a path",
		setParams{},
		func(in []byte, p setParams) ([]byte, error) {
			return text(jsondata.SetPath(string(in), p.Path, p.Value))
		})
	del := newOp("json_delete", CategoryJSON, "Delete the value at a path",
		pathParams{},
		func(in []byte, p pathParams) ([]byte, error) {
			return text(jsondata.DeletePath(string(in), p.Path))
		})

	toYAML := simpleOp("json_to_yaml", CategoryJSON, "Convert JSON to YAML keeping key order",
		func(in []byte) ([]byte, error) {
			return text(jsondata.ToYAML(string(in)))
		})
	fromYAML := newOp("yaml_to_json", CategoryJSON, "Convert YAML to JSON keeping key order",
		indentParams{Indent: 2},
		func(in []byte, p indentParams) ([]byte, error) {
			return text(jsondata.FromYAML(string(in), p.Indent))
		})
	pair(toYAML, fromYAML)

	schema := newOp("json_schema_validate", CategoryJSON, "Validate a JSON document against a JSON Schema",
		schemaParams{},
		func(in []byte, p schemaParams) ([]byte, error) {
			report, err := jsondata.ValidateSchema(p.Schema, string(in))
			if err != nil {
				return nil, err
			}
			return jsonResult(report)
		})

	mustRegister(format, minify, validateJSON, escape, unescape, stats, query, set, del, toYAML, fromYAML, schema)
}
