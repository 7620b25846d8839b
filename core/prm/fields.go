package prm

import (
	"strconv"

	prmerr "github.com/Fenex/vangers-tool/core/errors"
)

// Fields is a token reader over one line.
type Fields struct {
	tokens []string
	pos    int
}

// NewFields tokenizes a line.
func NewFields(l Line) *Fields {
	return &Fields{tokens: l.Fields()}
}

// Len returns the total number of tokens on the line.
func (f *Fields) Len() int {
	return len(f.tokens)
}

// Next returns the next raw token.
func (f *Fields) Next() (string, bool) {
	if f.pos >= len(f.tokens) {
		return "", false
	}
	tok := f.tokens[f.pos]
	f.pos++
	return tok, true
}

// Take reads one token and converts it. An absent token yields missing(); a
// token conv rejects yields malformed(token, convErr). The token is consumed
// either way.
func Take[T any](f *Fields, conv func(string) (T, error), missing func() error, malformed func(tok string, err error) error) (T, error) {
	var zero T
	tok, ok := f.Next()
	if !ok {
		return zero, missing()
	}
	v, err := conv(tok)
	if err != nil {
		return zero, malformed(tok, err)
	}
	return v, nil
}

// TakeField is Take with FieldErrors naming field. A malformed FieldError
// wraps the conversion error.
func TakeField[T any](f *Fields, field string, conv func(string) (T, error)) (T, error) {
	return Take(f, conv,
		func() error { return prmerr.NewMissing(field) },
		func(tok string, err error) error { return prmerr.NewMalformed(field, tok, err) })
}

// String reads a token as-is.
func (f *Fields) String(field string) (string, error) {
	return TakeField(f, field, func(s string) (string, error) { return s, nil })
}

// Uint8 reads an unsigned 8-bit number.
func (f *Fields) Uint8(field string) (uint8, error) {
	return TakeField(f, field, func(s string) (uint8, error) {
		v, err := strconv.ParseUint(s, 10, 8)
		return uint8(v), err
	})
}

// Uint32 reads an unsigned 32-bit number.
func (f *Fields) Uint32(field string) (uint32, error) {
	return TakeField(f, field, func(s string) (uint32, error) {
		v, err := strconv.ParseUint(s, 10, 32)
		return uint32(v), err
	})
}

// Int32 reads a signed 32-bit number.
func (f *Fields) Int32(field string) (int32, error) {
	return TakeField(f, field, func(s string) (int32, error) {
		v, err := strconv.ParseInt(s, 10, 32)
		return int32(v), err
	})
}

// Count reads a non-negative count.
func (f *Fields) Count(field string) (int, error) {
	return TakeField(f, field, func(s string) (int, error) {
		v, err := strconv.ParseUint(s, 10, 31)
		return int(v), err
	})
}

// End fails with a ShapeError if tokens remain. want describes the expected
// token count for the message.
func (f *Fields) End(context, want string) error {
	if f.pos < len(f.tokens) {
		return prmerr.NewShape(context, len(f.tokens), want)
	}
	return nil
}

// Expect fails with a ShapeError unless the line has exactly n tokens.
func (f *Fields) Expect(context string, n int) error {
	if len(f.tokens) != n {
		return prmerr.NewShape(context, len(f.tokens), strconv.Itoa(n))
	}
	return nil
}
