// Package source validates .cl source files before they reach the lexer:
// it strips a leading UTF-8 byte-order mark and rejects files that are
// not well-formed UTF-8, reporting failures through the same structured
// *errors.Report every later phase uses.
package source

import (
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	cerrors "github.com/coolc-lang/coolc/internal/errors"
)

// Load reads path and returns its contents as BOM-stripped, validated
// UTF-8 text.
func Load(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", cerrors.WrapReport(cerrors.New(cerrors.PhaseSource, cerrors.SRC002, nil,
			"cannot read source file "+path+": "+err.Error(), map[string]any{"path": path}))
	}
	return Validate(path, raw)
}

// Validate strips a BOM from raw and confirms the remainder is
// well-formed UTF-8. path is used only to label a failing Report.
func Validate(path string, raw []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8Validator), raw)
	if err != nil {
		return "", cerrors.WrapReport(cerrors.New(cerrors.PhaseSource, cerrors.SRC001, nil,
			path+" is not well-formed UTF-8: "+err.Error(), map[string]any{"path": path}))
	}
	return string(out), nil
}
