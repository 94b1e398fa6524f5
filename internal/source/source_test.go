package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/coolc-lang/coolc/internal/errors"
)

func TestValidateStripsBOM(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	raw := append(bom, []byte("class Main inherits IO {};")...)

	out, err := Validate("bom.cl", raw)
	require.NoError(t, err)
	assert.Equal(t, "class Main inherits IO {};", out)
}

func TestValidatePlainUTF8Unchanged(t *testing.T) {
	out, err := Validate("plain.cl", []byte("class A {};"))
	require.NoError(t, err)
	assert.Equal(t, "class A {};", out)
}

func TestValidateRejectsInvalidUTF8(t *testing.T) {
	raw := []byte{'c', 'l', 'a', 's', 's', 0xff, 0xfe}

	_, err := Validate("bad.cl", raw)
	require.Error(t, err)

	rep, ok := cerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cerrors.SRC001, rep.Code)
	assert.Equal(t, cerrors.PhaseSource, rep.Phase)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/does-not-exist.cl")
	require.Error(t, err)

	rep, ok := cerrors.AsReport(err)
	require.True(t, ok)
	assert.Equal(t, cerrors.SRC002, rep.Code)
}
