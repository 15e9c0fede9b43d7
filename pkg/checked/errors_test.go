package checked

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestErrInvalidElementLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var invalid ErrInvalidElement
	require.ErrorAs(t, NewWrongTypeErr("key", reflect.TypeFor[string](), 42), &invalid)
	logger.Info().Object("rejected", invalid).Msg("")

	out := buf.String()
	require.Contains(t, out, `"role":"key"`)
	require.Contains(t, out, `"expected":"string"`)
	require.Contains(t, out, `"actual":"int"`)
	require.Contains(t, out, "not assignable")
}

func TestNilElementLoggingOmitsActualType(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var invalid ErrInvalidElement
	require.ErrorAs(t, NewNilElementErr("element", reflect.TypeFor[*int]()), &invalid)
	logger.Info().Object("rejected", invalid).Msg("")

	out := buf.String()
	require.Contains(t, out, `"role":"element"`)
	require.NotContains(t, out, `"actual"`)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	err := NewNilElementErr("value", reflect.TypeFor[string]())
	require.Equal(t, "invalid value: nil is not allowed in a collection of `string`", err.Error())

	err = NewWrongTypeErr("element", reflect.TypeFor[string](), 42)
	require.Equal(t, "invalid element: `42` of type `int` is not assignable to `string`", err.Error())
}
