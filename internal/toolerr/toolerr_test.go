package toolerr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindSurvivesWrapping(t *testing.T) {
	base := New(KindFormat, "base64.decode", "illegal character")
	wrapped := fmt.Errorf("run base64_decode: %w", base)

	assert.True(t, IsKind(wrapped, KindFormat))
	assert.False(t, IsKind(wrapped, KindSyntax))
	assert.Equal(t, KindFormat, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrFormat))
	assert.False(t, errors.Is(wrapped, ErrIO))
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(KindIO, "digest.file", "read failed", io.ErrUnexpectedEOF)

	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "IOError")
	assert.Contains(t, err.Error(), "unexpected EOF")
}

func TestSyntaxPosition(t *testing.T) {
	err := Syntax("json.format", "invalid character '}'", 7, nil)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 7, e.Position)
	assert.Equal(t, KindSyntax, e.Kind)
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestErrorMessageWithoutOp(t *testing.T) {
	err := New(KindInvalidArgument, "", "empty charset")
	assert.Equal(t, "InvalidArgument: empty charset", err.Error())
}
