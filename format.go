package dbg

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Directive formats one positional argument for a %<letter> placeholder.
// Directives registered on a Context are looked up at format time, so
// registering or replacing one affects all subsequent emissions.
type Directive func(v any) string

func defaultDirectives() map[byte]Directive {
	return map[byte]Directive{
		'O': inspectVerbose,
		'o': inspectCompact,
	}
}

// inspectVerbose renders v in Go syntax with full type information.
func inspectVerbose(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%#v", v)
}

// inspectCompact renders v on a single line with struct field names.
func inspectCompact(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%+v", v)
}

// expand is the pre-pass over an emission's arguments. args[0] is coerced to
// a template: errors become their message, and any other non-string value
// gets a %O prepended so the whole value renders through the generic
// inspector. Registered directives are applied and their arguments spliced
// out; unregistered ones stay in the template for render, and the positional
// cursor advances past their argument either way.
func expand(directives map[byte]Directive, args []any) (string, []any) {
	if len(args) == 0 {
		return "", nil
	}
	if err, ok := args[0].(error); ok && err != nil {
		args = append([]any{}, args...)
		args[0] = err.Error()
	}
	format, ok := args[0].(string)
	rest := args[1:]
	if !ok {
		format = "%O"
		rest = args
	}
	if len(directives) == 0 || !strings.ContainsRune(format, '%') {
		return format, rest
	}

	removed := make([]bool, len(rest))
	spliced := 0
	cursor := 0
	var out strings.Builder
	out.Grow(len(format))
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' || i+1 >= len(format) {
			out.WriteByte(ch)
			continue
		}
		next := format[i+1]
		if next == '%' {
			out.WriteString("%%")
			i++
			continue
		}
		if !isASCIILetter(next) {
			out.WriteByte(ch)
			continue
		}
		if fn, ok := directives[next]; ok {
			if cursor < len(rest) {
				out.WriteString(fn(rest[cursor]))
				removed[cursor] = true
				spliced++
				cursor++
			} else {
				// No argument left to feed the directive; keep the
				// placeholder literal instead of failing.
				out.WriteByte('%')
				out.WriteByte(next)
			}
		} else {
			out.WriteByte('%')
			out.WriteByte(next)
			cursor++
		}
		i++
	}
	if spliced == 0 {
		return out.String(), rest
	}
	kept := make([]any, 0, len(rest)-spliced)
	for i, v := range rest {
		if !removed[i] {
			kept = append(kept, v)
		}
	}
	return out.String(), kept
}

// render substitutes the built-in directives (%s, %d, %i, %f, %j, %o, %O,
// %v) against the remaining positional arguments in order and appends any
// leftover arguments space-separated. Unknown letters stay literal and
// consume nothing; a recognized directive with no argument left also stays
// literal. render never fails on malformed templates.
func render(format string, args []any) string {
	var out strings.Builder
	out.Grow(len(format) + 16*len(args))
	cursor := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' || i+1 >= len(format) {
			out.WriteByte(ch)
			continue
		}
		next := format[i+1]
		if next == '%' {
			out.WriteByte('%')
			i++
			continue
		}
		if !isBuiltinDirective(next) {
			out.WriteByte(ch)
			continue
		}
		if cursor >= len(args) {
			out.WriteByte('%')
			out.WriteByte(next)
			i++
			continue
		}
		out.WriteString(renderBuiltin(next, args[cursor]))
		cursor++
		i++
	}
	for ; cursor < len(args); cursor++ {
		out.WriteByte(' ')
		out.WriteString(stringify(args[cursor]))
	}
	return out.String()
}

func isBuiltinDirective(ch byte) bool {
	switch ch {
	case 's', 'd', 'i', 'f', 'j', 'o', 'O', 'v':
		return true
	}
	return false
}

func renderBuiltin(ch byte, v any) string {
	switch ch {
	case 's', 'v':
		return stringify(v)
	case 'd', 'i':
		return formatInteger(v)
	case 'f':
		return formatFloat(v)
	case 'j':
		return formatJSON(v)
	case 'O':
		return inspectVerbose(v)
	case 'o':
		return inspectCompact(v)
	}
	return string([]byte{'%', ch})
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case error:
		return s.Error()
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatInteger(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int8:
		return strconv.FormatInt(int64(n), 10)
	case int16:
		return strconv.FormatInt(int64(n), 10)
	case int32:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint:
		return strconv.FormatUint(uint64(n), 10)
	case uint8:
		return strconv.FormatUint(uint64(n), 10)
	case uint16:
		return strconv.FormatUint(uint64(n), 10)
	case uint32:
		return strconv.FormatUint(uint64(n), 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case uintptr:
		return strconv.FormatUint(uint64(n), 10)
	case float32:
		return strconv.FormatInt(int64(n), 10)
	case float64:
		return strconv.FormatInt(int64(n), 10)
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v any) string {
	switch n := v.(type) {
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	case int64:
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	case uint64:
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func formatJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[unserializable: " + err.Error() + "]"
	}
	return string(data)
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
