package toolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"

	"github.com/RowanDark/devkit/internal/toolerr"
)

// validate is shared; validator caches struct metadata per type.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type noParams struct{}

// funcOp adapts a library call taking a typed parameter struct.
type funcOp[P any] struct {
	BaseOperation
	defaults P
	run      func(input []byte, p P) ([]byte, error)
}

func newOp[P any](name string, c Category, desc string, defaults P, run func([]byte, P) ([]byte, error)) *funcOp[P] {
	return &funcOp[P]{
		BaseOperation: BaseOperation{
			NameValue:        name,
			CategoryValue:    c,
			DescriptionValue: desc,
		},
		defaults: defaults,
		run:      run,
	}
}

func simpleOp(name string, c Category, desc string, run func([]byte) ([]byte, error)) *funcOp[noParams] {
	return newOp(name, c, desc, noParams{}, func(in []byte, _ noParams) ([]byte, error) {
		return run(in)
	})
}

func (o *funcOp[P]) Execute(ctx context.Context, input []byte, params map[string]any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := bindParams(o.NameValue, o.defaults, params)
	if err != nil {
		return nil, err
	}
	return o.run(input, p)
}

func (o *funcOp[P]) ParamsSchema() ([]byte, error) {
	p := o.defaults
	return paramsSchema(&p)
}

type reversible interface {
	Operation
	setReverse(Operation)
}

func pair(a, b reversible) {
	a.setReverse(b)
	b.setReverse(a)
}

// bindParams overlays raw onto defaults and validates the result.
func bindParams[P any](op string, defaults P, raw map[string]any) (P, error) {
	p := defaults
	if len(raw) > 0 {
		data, err := json.Marshal(coerceParams(reflect.TypeOf(p), raw))
		if err != nil {
			return p, toolerr.Wrap(toolerr.KindInvalidArgument, op, "encode parameters", err)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return p, toolerr.Wrap(toolerr.KindInvalidArgument, op, "invalid parameters", err)
		}
	}
	if err := validate.Struct(p); err != nil {
		return p, toolerr.New(toolerr.KindInvalidArgument, op, describeValidation(err))
	}
	return p, nil
}

// coerceParams converts string values to the kind of the struct field
// they target. Values that do not parse are left for the decoder to reject.
func coerceParams(t reflect.Type, raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		s, ok := out[name].(string)
		if name == "" || !ok {
			continue
		}
		s = strings.TrimSpace(s)
		switch f.Type.Kind() {
		case reflect.Bool:
			if b, err := strconv.ParseBool(s); err == nil {
				out[name] = b
			}
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				out[name] = n
			}
		case reflect.Float32, reflect.Float64:
			if n, err := strconv.ParseFloat(s, 64); err == nil {
				out[name] = n
			}
		}
	}
	return out
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("parameter %q failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("parameter %q failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func paramsSchema(v any) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct:             true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(v)

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

func jsonResult(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return data, nil
}
