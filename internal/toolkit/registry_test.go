package toolkit

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOperation is a test implementation of Operation
type mockOperation struct {
	BaseOperation
}

func (m *mockOperation) Execute(ctx context.Context, input []byte, params map[string]any) ([]byte, error) {
	return input, nil
}

func registerMock(t *testing.T, name string, c Category) *mockOperation {
	t.Helper()
	op := &mockOperation{BaseOperation{NameValue: name, CategoryValue: c, DescriptionValue: "Mock operation for testing"}}
	require.NoError(t, RegisterOperation(op))
	t.Cleanup(func() { UnregisterOperation(name) })
	return op
}

func TestRegisterOperation(t *testing.T) {
	op := registerMock(t, "mock_register", CategoryEncode)

	err := RegisterOperation(op)
	assert.ErrorContains(t, err, "already registered")

	assert.Error(t, RegisterOperation(nil))
	assert.Error(t, RegisterOperation(&mockOperation{}))
}

func TestGetOperation(t *testing.T) {
	registerMock(t, "mock_get", CategoryHash)

	retrieved, exists := GetOperation("mock_get")
	require.True(t, exists)
	assert.Equal(t, "mock_get", retrieved.Name())
	assert.Equal(t, CategoryHash, retrieved.Category())

	_, exists = GetOperation("nonexistent")
	assert.False(t, exists)
}

func TestUnregisterOperation(t *testing.T) {
	op := &mockOperation{BaseOperation{NameValue: "mock_unregister"}}
	require.NoError(t, RegisterOperation(op))
	UnregisterOperation("mock_unregister")

	_, exists := GetOperation("mock_unregister")
	assert.False(t, exists)
}

func TestListOperationsSorted(t *testing.T) {
	ops := ListOperations()
	require.NotEmpty(t, ops)

	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name()
	}
	assert.True(t, sort.StringsAreSorted(names))
	for _, want := range []string{"base64_encode", "sha256_hash", "aes_encrypt", "json_stats", "text_case", "uuid_generate"} {
		assert.Contains(t, names, want)
	}
}

func TestListOperationsByCategory(t *testing.T) {
	registerMock(t, "mock_category", CategoryGenerate)

	for _, c := range Categories {
		ops := ListOperationsByCategory(c)
		assert.NotEmpty(t, ops, c)
		for _, op := range ops {
			assert.Equal(t, c, op.Category())
		}
	}
	assert.Empty(t, ListOperationsByCategory("missing"))
}

func TestBuiltinOperations(t *testing.T) {
	for _, op := range ListOperations() {
		t.Run(op.Name(), func(t *testing.T) {
			assert.NotEmpty(t, op.Description())

			schema, err := op.ParamsSchema()
			require.NoError(t, err)
			var doc map[string]any
			require.NoError(t, json.Unmarshal(schema, &doc))
			assert.Equal(t, "object", doc["type"])

			if rev, ok := op.Reverse(); ok {
				back, ok := rev.Reverse()
				require.True(t, ok, "inverse of %s has no inverse", op.Name())
				assert.Equal(t, op.Name(), back.Name())
			}
		})
	}
}

func TestParamsSchemaListsFields(t *testing.T) {
	op, ok := GetOperation("aes_encrypt")
	require.True(t, ok)

	schema, err := op.ParamsSchema()
	require.NoError(t, err)

	var doc struct {
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	require.NoError(t, json.Unmarshal(schema, &doc))
	assert.Contains(t, doc.Properties, "key")
	assert.Contains(t, doc.Properties, "mode")
	assert.Contains(t, doc.Properties, "scheme")
	assert.Equal(t, []string{"key"}, doc.Required)
	assert.Equal(t, "CBC", doc.Properties["mode"]["default"])
}
