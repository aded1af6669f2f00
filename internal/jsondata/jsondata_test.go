package jsondata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RowanDark/devkit/internal/toolerr"
)

func TestFormat(t *testing.T) {
	in := `{"b":1,"a":[true,null,"x"],"c":{},"d":[]}`
	want := `{
  "b": 1,
  "a": [
    true,
    null,
    "x"
  ],
  "c": {},
  "d": []
}`
	got, err := Format(in, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFormatClampsIndent(t *testing.T) {
	got, err := Format(`[1]`, 40)
	require.NoError(t, err)
	assert.Equal(t, "[\n"+strings.Repeat(" ", MaxIndent)+"1\n]", got)

	got, err = Format(`[1, 2]`, -3)
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", got)
}

func TestNumbersPrintLikeJavaScript(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1.0", "1"},
		{"1e2", "100"},
		{"-0", "0"},
		{"0.000001", "0.000001"},
		{"1E-7", "1e-7"},
		{"1.5e-7", "1.5e-7"},
		{"1e20", "100000000000000000000"},
		{"1e21", "1e+21"},
		{"12345678901234567890", "12345678901234567000"},
		{"1e400", "null"},
		{"3.14159", "3.14159"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Minify(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringsAreNotHTMLEscaped(t *testing.T) {
	got, err := Minify(`{"html":"<a href='x'>&amp;</a>","ls":"\u2028","ctl":"\u0001"}`)
	require.NoError(t, err)
	assert.Equal(t, "{\"html\":\"<a href='x'>&amp;</a>\",\"ls\":\"\u2028\",\"ctl\":\"\\u0001\"}", got)
}

func TestDuplicateKeysKeepFirstPositionLastValue(t *testing.T) {
	got, err := Minify(`{"a":1,"b":2,"a":3}`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, got)
}

func TestFormatSyntaxError(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":}`, `[1,]`, `{"a" 1}`, `[1] x`, `{'a':1}`} {
		t.Run(in, func(t *testing.T) {
			_, err := Format(in, 2)
			require.Error(t, err)
			assert.True(t, toolerr.IsKind(err, toolerr.KindSyntax))
		})
	}
}

func TestMinifyIdempotence(t *testing.T) {
	docs := []string{
		`{"a":[1,2,{"b":true}],"c":"x y","d":null}`,
		"{\n  \"z\" :  [ ] ,\n\t\"y\": { \"k\": -1.50 }\n}",
		`"just a string"`,
	}
	for _, doc := range docs {
		formatted, err := Format(doc, 4)
		require.NoError(t, err)
		once, err := Minify(formatted)
		require.NoError(t, err)
		twice, err := Minify(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)

		for _, n := range []int{0, 2, 7} {
			a, err := Format(once, n)
			require.NoError(t, err)
			b, err := Format(doc, n)
			require.NoError(t, err)
			assert.Equal(t, b, a)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		valid    bool
		position int
	}{
		{"valid object", `{"a":1}`, true, -1},
		{"valid scalar", `  42 `, true, -1},
		{"bad value", `{"a":}`, false, 5},
		{"multibyte prefix", `{"é":}`, false, 5},
		{"trailing data", `[1,2] x`, false, 6},
		{"truncated", `{"a":1`, false, 6},
		{"empty", ``, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.in)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.valid {
				assert.Empty(t, res.Error)
				assert.Nil(t, res.Position)
				return
			}
			assert.NotEmpty(t, res.Error)
			require.NotNil(t, res.Position)
			assert.Equal(t, tt.position, *res.Position)
		})
	}
}

func TestEscapeUnescape(t *testing.T) {
	raw := "a\"b\\c\n\t\x01<>&é"
	lit := Escape(raw)
	assert.Equal(t, `"a\"b\\c\n\t\u0001<>&é"`, lit)

	back, err := Unescape(lit)
	require.NoError(t, err)
	assert.Equal(t, raw, back)

	got, err := Unescape(`"\u0041\/"`)
	require.NoError(t, err)
	assert.Equal(t, "A/", got)

	for _, bad := range []string{`123`, `"abc`, `abc`, `{"a":1}`, `"a" "b"`} {
		_, err := Unescape(bad)
		assert.True(t, toolerr.IsKind(err, toolerr.KindSyntax), bad)
	}
}

func TestStatistics(t *testing.T) {
	stats, err := GetStatistics(`{"a":[1,2,{"b":true}]}`)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Objects)
	assert.Equal(t, 1, stats.Arrays)
	assert.Equal(t, 2, stats.Numbers)
	assert.Equal(t, 1, stats.Booleans)
	assert.Equal(t, 2, stats.Keys)
	assert.Equal(t, 2, stats.Depth)
	assert.Equal(t, 6, stats.Nodes)
	assert.Equal(t, 1, stats.Lines)
	assert.Equal(t, len(`{"a":[1,2,{"b":true}]}`), stats.Size)
}

func TestStatisticsVisitsEveryNodeOnce(t *testing.T) {
	stats, err := GetStatistics("[\n\"s\",\nnull,\n[[]],\n{\"k\":{}}\n]")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Strings)
	assert.Equal(t, 1, stats.Nulls)
	assert.Equal(t, 3, stats.Arrays)
	assert.Equal(t, 2, stats.Objects)
	assert.Equal(t, 1, stats.Keys)
	assert.Equal(t, 2, stats.Depth)
	assert.Equal(t, 7, stats.Nodes)
	assert.Equal(t, 6, stats.Lines)

	sum := stats.Strings + stats.Numbers + stats.Booleans + stats.Nulls + stats.Arrays + stats.Objects
	assert.Equal(t, stats.Nodes, sum)

	scalar, err := GetStatistics(`"x"`)
	require.NoError(t, err)
	assert.Equal(t, 0, scalar.Depth)
	assert.Equal(t, 1, scalar.Nodes)

	_, err = GetStatistics(`{`)
	assert.True(t, toolerr.IsKind(err, toolerr.KindSyntax))
}
