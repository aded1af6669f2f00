package jsondata

import (
	"bytes"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// ToYAML converts a JSON document to YAML with two-space indentation,
// keeping object key order.
func ToYAML(data string) (string, error) {
	v, err := Parse(data)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toNode(v)); err != nil {
		return "", toolerr.Wrap(toolerr.KindInvalidArgument, "json.to_yaml", "encode yaml", err)
	}
	if err := enc.Close(); err != nil {
		return "", toolerr.Wrap(toolerr.KindInvalidArgument, "json.to_yaml", "encode yaml", err)
	}
	return buf.String(), nil
}

func toNode(v *Value) *yaml.Node {
	switch v.Kind {
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool)}
	case Number:
		s := formatNumber(v.Number)
		if s == "null" {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str}
	case Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items {
			n.Content = append(n.Content, toNode(item))
		}
		return n
	case Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for pair := v.Fields.Oldest(); pair != nil; pair = pair.Next() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
				toNode(pair.Value))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// FromYAML converts a single YAML document to JSON formatted with indent.
// Mapping order is preserved. Timestamps and other non-JSON scalars become
// strings.
func FromYAML(data string, indent int) (string, error) {
	const op = "json.from_yaml"
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(data), &doc); err != nil {
		return "", toolerr.Syntax(op, err.Error(), -1, err)
	}
	if doc.Kind == 0 {
		return "null", nil
	}
	v, err := fromNode(op, &doc, 0)
	if err != nil {
		return "", err
	}
	return v.Encode(clampIndent(indent)), nil
}

// maxNodeDepth bounds recursion through nesting and alias expansion.
const maxNodeDepth = 256

func fromNode(op string, n *yaml.Node, depth int) (*Value, error) {
	if depth > maxNodeDepth {
		return nil, toolerr.Syntax(op, "document nests too deeply", -1, nil)
	}
	switch n.Kind {
	case yaml.AliasNode:
		return fromNode(op, n.Alias, depth+1)
	case yaml.SequenceNode:
		arr := &Value{Kind: Array, Items: []*Value{}}
		for _, c := range n.Content {
			item, err := fromNode(op, c, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Items = append(arr.Items, item)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := newObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := fromNode(op, n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			obj.Fields.Set(n.Content[i].Value, val)
		}
		return obj, nil
	case yaml.ScalarNode:
		return scalarValue(n), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Value{Kind: Null}, nil
		}
		return fromNode(op, n.Content[0], depth+1)
	}
	return nil, toolerr.Syntax(op, "unsupported yaml node", n.Line, nil)
}

func scalarValue(n *yaml.Node) *Value {
	switch n.ShortTag() {
	case "!!null":
		return &Value{Kind: Null}
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return &Value{Kind: Bool, Bool: b}
		}
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			if math.IsNaN(f) {
				return &Value{Kind: Null}
			}
			return &Value{Kind: Number, Number: f}
		}
	}
	return &Value{Kind: String, Str: n.Value}
}
