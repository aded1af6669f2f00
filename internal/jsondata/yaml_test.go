package jsondata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/devkit/internal/toolerr"
)

func TestYAMLRoundTripPreservesOrder(t *testing.T) {
	in := `{"name":"devkit","tags":["a","b"],"n":1.5,"ok":true,"nil":null,"s":"true","zero":"007","nested":{"z":1,"a":2},"empty":[]}`

	y, err := ToYAML(in)
	require.NoError(t, err)
	assert.Contains(t, y, "name: devkit\n")
	assert.Contains(t, y, `s: "true"`)
	assert.Contains(t, y, `zero: "007"`)
	assert.Contains(t, y, "empty: []")

	back, err := FromYAML(y, 0)
	require.NoError(t, err)
	assert.Equal(t, in, back)
}

func TestFromYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mapping", "a: 1\nb: [x, 2.5, true, null]\n", `{"a":1,"b":["x",2.5,true,null]}`},
		{"anchors", "base: &b {x: 1}\nref: *b\n", `{"base":{"x":1},"ref":{"x":1}}`},
		{"hex int", "n: 0x1F\n", `{"n":31}`},
		{"timestamp as string", "at: 2024-01-02\n", `{"at":"2024-01-02"}`},
		{"empty", "", `null`},
		{"scalar document", "hello\n", `"hello"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromYAML(tt.in, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromYAMLIndent(t *testing.T) {
	got, err := FromYAML("a: [1]\n", 2)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}", got)
}

func TestYAMLErrors(t *testing.T) {
	_, err := FromYAML("a: [\n", 2)
	assert.True(t, toolerr.IsKind(err, toolerr.KindSyntax))

	_, err = ToYAML(`{"a":`)
	assert.True(t, toolerr.IsKind(err, toolerr.KindSyntax))
}
