package translate

import (
	"math"
	"strconv"
	"strings"

	"github.com/jchultarsky101/pcli2-mcp/internal/errors"
)

// Kind describes how one JSON argument maps onto command-line tokens.
type Kind int

const (
	// KindString maps a string value to "--flag value".
	KindString Kind = iota

	// KindBool maps boolean true to a bare "--flag" token.
	KindBool

	// KindNumber maps a JSON number to "--flag <number>".
	KindNumber

	// KindInt maps a non-negative integral JSON number to "--flag <n>".
	// Fractional or negative values are omitted.
	KindInt

	// KindEnum behaves like KindString; the accepted values are
	// documented in the tool schema, not enforced here.
	KindEnum

	// KindStringOrList accepts a string or an array of strings and
	// emits one "--flag value" pair per element, preserving order.
	KindStringOrList

	// KindPositional maps a string value to a bare token.
	KindPositional

	// KindPositionalList accepts a string or an array of strings and
	// emits one bare token per element, preserving order.
	KindPositionalList
)

// Arg maps one JSON argument key onto command-line tokens.
type Arg struct {
	// Key is the JSON argument name.
	Key string

	// Flag is the command-line flag the value is attached to.
	// Unused by positional kinds.
	Flag string

	// Kind selects the mapping rule.
	Kind Kind

	// Enum lists accepted values for KindEnum, for schema documentation.
	Enum []string
}

// Requirement is one required-argument rule. A single key is a hard
// requirement; multiple keys mean at least one of them must be present.
type Requirement struct {
	Keys []string
}

func (r Requirement) check(args map[string]any) error {
	for _, k := range r.Keys {
		if _, ok := args[k].(string); ok {
			return nil
		}
	}

	if len(r.Keys) == 1 {
		return &errors.MissingRequiredError{Key: r.Keys[0]}
	}

	return &errors.MissingOneOfError{Keys: r.Keys}
}

// Spec is the declarative translation rule for one tool.
type Spec struct {
	// Command is the fixed argv prefix, e.g. {"tenant", "use"}.
	Command []string

	// Args are the argument mappings, applied in declaration order.
	Args []Arg

	// Require is the tool's required-argument policy, checked before
	// any token is emitted.
	Require []Requirement
}

// Translate builds the argv for the given JSON arguments.
//
// Absent, null, or wrongly-typed optional values are silently omitted.
// Unknown keys in args are ignored. The returned slice is freshly
// allocated on every call.
func (s Spec) Translate(args map[string]any) ([]string, error) {
	for _, req := range s.Require {
		if err := req.check(args); err != nil {
			return nil, err
		}
	}

	argv := make([]string, 0, len(s.Command)+2*len(s.Args))
	argv = append(argv, s.Command...)

	for _, a := range s.Args {
		argv = a.appendTokens(argv, args[a.Key])
	}

	return argv, nil
}

// Label returns the human-readable command label for error messages,
// e.g. "pcli2 tenant use".
func (s Spec) Label(program string) string {
	if len(s.Command) == 0 {
		return program
	}

	return program + " " + strings.Join(s.Command, " ")
}

// HasArg reports whether the spec declares an argument with the given key.
func (s Spec) HasArg(key string) bool {
	for _, a := range s.Args {
		if a.Key == key {
			return true
		}
	}

	return false
}

func (a Arg) appendTokens(argv []string, v any) []string {
	switch a.Kind {
	case KindString, KindEnum:
		if s, ok := v.(string); ok {
			argv = append(argv, a.Flag, s)
		}
	case KindBool:
		if b, ok := v.(bool); ok && b {
			argv = append(argv, a.Flag)
		}
	case KindNumber:
		if f, ok := v.(float64); ok {
			argv = append(argv, a.Flag, strconv.FormatFloat(f, 'f', -1, 64))
		}
	case KindInt:
		if f, ok := v.(float64); ok && f >= 0 && f == math.Trunc(f) {
			argv = append(argv, a.Flag, strconv.FormatInt(int64(f), 10))
		}
	case KindStringOrList:
		for _, s := range stringList(v) {
			argv = append(argv, a.Flag, s)
		}
	case KindPositional:
		if s, ok := v.(string); ok {
			argv = append(argv, s)
		}
	case KindPositionalList:
		argv = append(argv, stringList(v)...)
	}

	return argv
}

// stringList normalizes a string-or-array value to a list of strings.
// Non-string elements are dropped.
func stringList(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}

		return out
	}

	return nil
}
