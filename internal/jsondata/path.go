package jsondata

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// QueryResult is the value found at a path. Raw is the matched JSON text.
type QueryResult struct {
	Exists bool   `json:"exists"`
	Type   string `json:"type"`
	Raw    string `json:"raw"`
}

// Query looks up path (gjson syntax, for example "users.#.name") in data.
func Query(data, path string) (QueryResult, error) {
	const op = "json.query"
	if strings.TrimSpace(path) == "" {
		return QueryResult{}, toolerr.New(toolerr.KindInvalidArgument, op, "path must not be empty")
	}
	if err := checkSyntax(data); err != nil {
		return QueryResult{}, err
	}
	res := gjson.Get(data, path)
	if !res.Exists() {
		return QueryResult{Exists: false, Type: Null.String()}, nil
	}
	return QueryResult{Exists: true, Type: resultKind(res).String(), Raw: res.Raw}, nil
}

func resultKind(r gjson.Result) Kind {
	switch r.Type {
	case gjson.True, gjson.False:
		return Bool
	case gjson.Number:
		return Number
	case gjson.String:
		return String
	case gjson.JSON:
		if r.IsArray() {
			return Array
		}
		return Object
	}
	return Null
}

// SetPath stores the JSON value rawValue at path, creating intermediate
// objects as needed.
func SetPath(data, path, rawValue string) (string, error) {
	const op = "json.set"
	if strings.TrimSpace(path) == "" {
		return "", toolerr.New(toolerr.KindInvalidArgument, op, "path must not be empty")
	}
	if err := checkSyntax(data); err != nil {
		return "", err
	}
	if err := checkSyntax(rawValue); err != nil {
		return "", err
	}
	out, err := sjson.SetRaw(data, path, strings.TrimSpace(rawValue))
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "invalid path", err)
	}
	return out, nil
}

// DeletePath removes the value at path. Deleting a missing path is a no-op.
func DeletePath(data, path string) (string, error) {
	const op = "json.delete"
	if strings.TrimSpace(path) == "" {
		return "", toolerr.New(toolerr.KindInvalidArgument, op, "path must not be empty")
	}
	if err := checkSyntax(data); err != nil {
		return "", err
	}
	out, err := sjson.Delete(data, path)
	if err != nil {
		return "", toolerr.Wrap(toolerr.KindInvalidArgument, op, "invalid path", err)
	}
	return out, nil
}
