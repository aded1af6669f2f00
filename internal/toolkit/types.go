package toolkit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "devkit/toolkit"

// Category groups operations for listing.
type Category string

const (
	CategoryEncode   Category = "encode"
	CategoryDecode   Category = "decode"
	CategoryHash     Category = "hash"
	CategoryEncrypt  Category = "encrypt"
	CategoryDecrypt  Category = "decrypt"
	CategoryJSON     Category = "json"
	CategoryText     Category = "text"
	CategoryGenerate Category = "generate"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryEncode, CategoryDecode, CategoryHash, CategoryEncrypt,
	CategoryDecrypt, CategoryJSON, CategoryText, CategoryGenerate,
}

// Operation is a single named transformation.
type Operation interface {
	// Name returns the unique identifier for this operation
	Name() string

	// Category returns the group this operation is listed under
	Category() Category

	// Description returns a human-readable description
	Description() string

	// Execute applies the operation to the input data
	Execute(ctx context.Context, input []byte, params map[string]any) ([]byte, error)

	// Reverse returns the inverse operation if available
	Reverse() (Operation, bool)

	// ParamsSchema returns the JSON Schema of the accepted parameters
	ParamsSchema() ([]byte, error)
}

// OperationConfig is one step of a pipeline.
type OperationConfig struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Pipeline is a chain of operations applied in order.
type Pipeline struct {
	Operations []OperationConfig `json:"operations"`
	Reversible bool              `json:"reversible"`
}

// Execute runs the pipeline on the input data. Each step runs in its own
// span on the globally installed tracer provider.
func (p *Pipeline) Execute(ctx context.Context, input []byte) ([]byte, error) {
	tracer := otel.Tracer(tracerName)
	result := input

	for i, opConfig := range p.Operations {
		op, exists := GetOperation(opConfig.Name)
		if !exists {
			return nil, fmt.Errorf("unknown operation at step %d: %s", i, opConfig.Name)
		}

		stepCtx, span := tracer.Start(ctx, "toolkit."+opConfig.Name,
			trace.WithAttributes(
				attribute.Int("toolkit.step", i),
				attribute.String("toolkit.category", string(op.Category())),
				attribute.Int("toolkit.input_bytes", len(result)),
			))
		out, err := op.Execute(stepCtx, result, opConfig.Parameters)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return nil, fmt.Errorf("operation %s failed at step %d: %w", opConfig.Name, i, err)
		}
		span.SetAttributes(attribute.Int("toolkit.output_bytes", len(out)))
		span.End()
		result = out
	}

	return result, nil
}

// Reverse builds the inverse pipeline when every step has an inverse.
// Parameters carry over to the inverse step unchanged.
func (p *Pipeline) Reverse() (*Pipeline, error) {
	if !p.Reversible {
		return nil, fmt.Errorf("pipeline is not reversible")
	}

	reversed := &Pipeline{
		Operations: make([]OperationConfig, len(p.Operations)),
		Reversible: true,
	}

	for i, opConfig := range p.Operations {
		op, exists := GetOperation(opConfig.Name)
		if !exists {
			return nil, fmt.Errorf("unknown operation: %s", opConfig.Name)
		}

		reverseOp, ok := op.Reverse()
		if !ok {
			return nil, fmt.Errorf("operation %s is not reversible", opConfig.Name)
		}

		reversed.Operations[len(p.Operations)-1-i] = OperationConfig{
			Name:       reverseOp.Name(),
			Parameters: reverseParameters(op, opConfig.Parameters),
		}
	}

	return reversed, nil
}

// reverseParameters layers params over the inverse defaults op declares.
func reverseParameters(op Operation, params map[string]any) map[string]any {
	rp, ok := op.(interface{ ReverseParameters() map[string]any })
	if !ok {
		return params
	}
	merged := rp.ReverseParameters()
	if merged == nil {
		return params
	}
	for k, v := range params {
		merged[k] = v
	}
	return merged
}

// DetectionResult is one guess of Detector.Detect.
type DetectionResult struct {
	Encoding   string  `json:"encoding"`
	Confidence float64 `json:"confidence"` // 0.0 to 1.0
	Reasoning  string  `json:"reasoning"`
	Operation  string  `json:"operation"` // operation that decodes it
}

// Detector identifies the encoding or format of input data.
type Detector interface {
	Detect(ctx context.Context, input []byte) ([]DetectionResult, error)
	SupportedEncodings() []string
}

// BaseOperation carries the descriptive fields shared by operations.
type BaseOperation struct {
	NameValue        string
	CategoryValue    Category
	DescriptionValue string
	ReverseOp        Operation
	// ReverseParams are set on the inverse step when a pipeline is
	// reversed, underneath the parameters carried over from this step.
	ReverseParams map[string]any
}

func (b *BaseOperation) Name() string {
	return b.NameValue
}

func (b *BaseOperation) Category() Category {
	return b.CategoryValue
}

func (b *BaseOperation) Description() string {
	return b.DescriptionValue
}

func (b *BaseOperation) Reverse() (Operation, bool) {
	if b.ReverseOp == nil {
		return nil, false
	}
	return b.ReverseOp, true
}

// ParamsSchema describes an operation without parameters.
func (b *BaseOperation) ParamsSchema() ([]byte, error) {
	return paramsSchema(&noParams{})
}

// ReverseParameters returns the parameters the inverse operation needs to
// undo this one exactly.
func (b *BaseOperation) ReverseParameters() map[string]any {
	if len(b.ReverseParams) == 0 {
		return nil
	}
	out := make(map[string]any, len(b.ReverseParams))
	for k, v := range b.ReverseParams {
		out[k] = v
	}
	return out
}

func (b *BaseOperation) setReverse(op Operation) {
	b.ReverseOp = op
}
