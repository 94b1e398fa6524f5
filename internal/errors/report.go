package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coolc-lang/coolc/internal/ast"
)

// Report is the canonical structured error type for coolc.
// Every diagnostic-producing phase returns *Report values; they are never
// formatted to a string until a driver decides how to present them.
type Report struct {
	Schema  string         `json:"schema"`         // Always "coolc.error/v1"
	Code    string         `json:"code"`            // Error code (HIE001, TYP004, ...)
	Phase   string         `json:"phase"`           // "hierarchy", "features", "typecheck", ...
	Message string         `json:"message"`         // Human-readable message
	Pos     *ast.Pos       `json:"pos,omitempty"`   // Source location (optional)
	Data    map[string]any `json:"data,omitempty"`  // Structured data
}

// ReportError wraps a Report as an error so it survives errors.As unwrapping
// through ordinary Go error-handling code.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Pos != nil {
		return fmt.Sprintf("%s: %s: %s", e.Rep.Pos, e.Rep.Code, e.Rep.Message)
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report for the given phase and code at an optional position.
func New(phase, code string, pos *ast.Pos, message string, data map[string]any) *Report {
	return &Report{
		Schema:  "coolc.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Pos:     pos,
		Data:    data,
	}
}

// ToJSON converts a Report to JSON, indented unless compact is requested.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
