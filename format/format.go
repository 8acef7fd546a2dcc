// Package format implements ordered positional substitution for page templates.
//
// A template is plain text with slots written as {0}, {1}, ... or {} for the
// next automatic slot. Literal braces are written as {{ and }}. There are no
// named fields, format specs or conversions.
package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrSyntax reports a malformed slot or a stray brace.
	ErrSyntax = errors.New("template syntax error")
	// ErrIndex reports a slot that has no matching value.
	ErrIndex = errors.New("slot index out of range")
)

// Error describes where in the template formatting failed.
type Error struct {
	Offset int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("format: offset %d: %s", e.Offset, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Format fills the slots of tmpl with args. Unused args are ignored; a slot
// with no value is an error.
func Format(tmpl string, args ...string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))

	auto := 0
	numbering := 0 // 0 unset, 1 automatic, 2 manual
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", &Error{Offset: i, Msg: "single '}' encountered", Err: ErrSyntax}
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", &Error{Offset: i, Msg: "single '{' encountered", Err: ErrSyntax}
			}
			field := tmpl[i+1 : i+1+end]

			var idx int
			if field == "" {
				if numbering == 2 {
					return "", &Error{Offset: i, Msg: "cannot switch from manual to automatic numbering", Err: ErrSyntax}
				}
				numbering = 1
				idx = auto
				auto++
			} else {
				if numbering == 1 {
					return "", &Error{Offset: i, Msg: "cannot switch from automatic to manual numbering", Err: ErrSyntax}
				}
				n, err := strconv.Atoi(field)
				if err != nil || n < 0 || strings.HasPrefix(field, "+") {
					return "", &Error{Offset: i, Msg: fmt.Sprintf("unsupported slot %q", field), Err: ErrSyntax}
				}
				numbering = 2
				idx = n
			}
			if idx >= len(args) {
				return "", &Error{Offset: i, Msg: fmt.Sprintf("slot %d has no value (%d given)", idx, len(args)), Err: ErrIndex}
			}
			b.WriteString(args[idx])
			i += end + 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
