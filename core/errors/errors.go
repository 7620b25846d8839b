// Package errors provides the error taxonomy for PRM ingestion.
//
// Every concrete error unwraps to one of the kind sentinels below, so callers
// can classify a failure with errors.Is regardless of how deep it was raised.
// The wrapper types (TableError, BlockError, RecordError) keep the causal
// chain from a table down to the offending token.
package errors

import (
	"errors"
	"fmt"
)

// Kind sentinels.
var (
	// ErrOpen indicates the source could not be opened or read.
	ErrOpen = errors.New("open failure")
	// ErrSignature indicates a missing or wrong signature line.
	ErrSignature = errors.New("signature mismatch")
	// ErrField indicates a token was absent or failed to convert.
	ErrField = errors.New("field error")
	// ErrShape indicates a line had the wrong number of tokens.
	ErrShape = errors.New("shape error")
	// ErrStructural indicates a violated multi-line pattern invariant.
	ErrStructural = errors.New("structural error")
	// ErrUnimplemented indicates a record kind no parser is defined for.
	ErrUnimplemented = errors.New("unimplemented record")
)

// Structural sub-kinds. A StructuralError unwraps to both ErrStructural and
// one of these.
var (
	ErrExpectedTitle  = errors.New("expected title block")
	ErrShortBlock     = errors.New("fewer lines than declared")
	ErrUnterminated   = errors.New("expected `none` terminate line not found")
	ErrZeroCount      = errors.New("declared count is zero")
	ErrUnknownVariant = errors.New("unknown variant tag")
	ErrCountMismatch  = errors.New("record count differs from declared total")
)

// OpenError reports that a named source entry could not be read.
type OpenError struct {
	Path string // Entry name or path
	Err  error  // Underlying I/O error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("can't open %s to read: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() []error {
	return []error{ErrOpen, e.Err}
}

// SignatureError reports a file whose first content line is not the signature.
type SignatureError struct {
	Path string
	Got  string // First cleaned line, empty if the file had no content
	Want string
}

func (e *SignatureError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("wrong signature in %s: file has no content", e.Path)
	}
	return fmt.Sprintf("wrong signature in %s: got %q, want %q", e.Path, e.Got, e.Want)
}

func (e *SignatureError) Unwrap() error {
	return ErrSignature
}

// FieldError reports one token that was missing or malformed.
type FieldError struct {
	Field   string // Field name, e.g. "cirt"
	Token   string // Offending token; empty when missing
	Missing bool
	Err     error // Conversion error, if any
}

func (e *FieldError) Error() string {
	if e.Missing {
		return fmt.Sprintf("`%s` property: missing", e.Field)
	}
	return fmt.Sprintf("`%s` property: malformed value %q", e.Field, e.Token)
}

func (e *FieldError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrField, e.Err}
	}
	return []error{ErrField}
}

// ShapeError reports a line with too many or too few tokens.
type ShapeError struct {
	Context string // What the line was expected to be
	Got     int
	Want    string // Human-readable expectation, e.g. "5" or "4 or 5"
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: got %d tokens, want %s", e.Context, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// StructuralError reports a broken multi-line pattern.
type StructuralError struct {
	Kind    error // One of the structural sub-kind sentinels
	Message string
}

func (e *StructuralError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return e.Kind.Error()
}

func (e *StructuralError) Unwrap() []error {
	return []error{ErrStructural, e.Kind}
}

// UnimplementedError reports a record kind that has no defined layout.
type UnimplementedError struct {
	Record string
}

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("%s record layout is not implemented", e.Record)
}

func (e *UnimplementedError) Unwrap() error {
	return ErrUnimplemented
}

// TableError is the outermost layer of a failed table parse.
type TableError struct {
	Table string // Table name, e.g. "bunches"
	Path  string // Source entry
	Err   error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("%s parse error (%s): %v", e.Table, e.Path, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// BlockError wraps a failure inside one multi-line block.
type BlockError struct {
	Block string // Block kind, e.g. "bunch"
	Index int    // 0-based block ordinal in the file
	Line  int    // Line number of the block's first line, 0 if unknown
	Err   error
}

func (e *BlockError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s #%d (line %d): %v", e.Block, e.Index, e.Line, e.Err)
	}
	return fmt.Sprintf("%s #%d: %v", e.Block, e.Index, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// RecordError wraps a failure parsing one line into a record.
type RecordError struct {
	Record string
	Line   int
	Err    error
}

func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %v", e.Record, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Record, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Helper functions for creating common errors

// NewOpen creates an OpenError
func NewOpen(path string, err error) *OpenError {
	return &OpenError{Path: path, Err: err}
}

// NewSignature creates a SignatureError
func NewSignature(path, got, want string) *SignatureError {
	return &SignatureError{Path: path, Got: got, Want: want}
}

// NewMissing creates a FieldError for an absent token
func NewMissing(field string) *FieldError {
	return &FieldError{Field: field, Missing: true}
}

// NewMalformed creates a FieldError for a token that failed to convert
func NewMalformed(field, token string, err error) *FieldError {
	return &FieldError{Field: field, Token: token, Err: err}
}

// NewShape creates a ShapeError
func NewShape(context string, got int, want string) *ShapeError {
	return &ShapeError{Context: context, Got: got, Want: want}
}

// NewStructural creates a StructuralError of the given sub-kind
func NewStructural(kind error, format string, args ...interface{}) *StructuralError {
	return &StructuralError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewUnimplemented creates an UnimplementedError
func NewUnimplemented(record string) *UnimplementedError {
	return &UnimplementedError{Record: record}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}
