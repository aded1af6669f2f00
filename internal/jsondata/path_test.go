package jsondata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/devkit/internal/toolerr"
)

const usersDoc = `{"users":[{"name":"ann","age":31},{"name":"bob","age":27}],"ok":true}`

func TestQuery(t *testing.T) {
	tests := []struct {
		path   string
		exists bool
		typ    string
		raw    string
	}{
		{"users.#.name", true, "array", `["ann","bob"]`},
		{"users.0.name", true, "string", `"ann"`},
		{"users.1.age", true, "number", `27`},
		{"users.0", true, "object", `{"name":"ann","age":31}`},
		{"ok", true, "boolean", `true`},
		{"missing.path", false, "null", ``},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := Query(usersDoc, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, res.Exists)
			assert.Equal(t, tt.typ, res.Type)
			assert.Equal(t, tt.raw, res.Raw)
		})
	}
}

func TestQueryErrors(t *testing.T) {
	_, err := Query(`{"a":`, "a")
	assert.True(t, toolerr.IsKind(err, toolerr.KindSyntax))

	_, err = Query(usersDoc, " ")
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))
}

func TestSetAndDeletePath(t *testing.T) {
	out, err := SetPath(`{"a":1}`, "b.c", `true`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":{"c":true}}`, out)

	out, err = SetPath(out, "a", `{"x":[1]}`)
	require.NoError(t, err)
	res, err := Query(out, "a.x.0")
	require.NoError(t, err)
	assert.Equal(t, "1", res.Raw)

	out, err = DeletePath(`{"a":1,"b":2}`, "a")
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, out)

	out, err = DeletePath(`{"a":1}`, "zzz")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, out)
}

func TestSetPathErrors(t *testing.T) {
	_, err := SetPath(`{"a":1}`, "b", `{`)
	assert.True(t, toolerr.IsKind(err, toolerr.KindSyntax))

	_, err = SetPath(`nope`, "b", `1`)
	assert.True(t, toolerr.IsKind(err, toolerr.KindSyntax))

	_, err = SetPath(`{}`, "", `1`)
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))

	_, err = DeletePath(`{}`, "")
	assert.True(t, toolerr.IsKind(err, toolerr.KindInvalidArgument))
}
