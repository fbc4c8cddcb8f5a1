package lint

import (
	"regexp"
	"sort"
	"strings"
)

// CallForm distinguishes `name(args)` from the `{name:args}` shorthand.
type CallForm uint8

const (
	CallParen CallForm = iota
	CallBrace
)

func (f CallForm) String() string {
	if f == CallBrace {
		return "brace"
	}
	return "paren"
}

// Call is one function call site found on a single line.
// Start and End are byte offsets; End is exclusive and covers the closer.
type Call struct {
	Name  string
	Form  CallForm
	Start int
	End   int
	Args  []string
	// Inner is the raw text between the opener and the closer.
	Inner string
}

// ArgCount is 0 for a blank argument list, otherwise the number of split arguments.
func (c Call) ArgCount() int {
	if strings.TrimSpace(c.Inner) == "" {
		return 0
	}
	return len(c.Args)
}

var (
	parenCallRx = regexp.MustCompile(`\b([A-Za-z_]\w*)\s*\(`)
	braceCallRx = regexp.MustCompile(`\{([A-Za-z_]\w*):`)
)

// FindCalls returns every call on line whose closer is on the same line,
// ordered by start offset. Calls that run past the end of the line are dropped.
func FindCalls(line string) []Call {
	var calls []Call
	for _, m := range parenCallRx.FindAllStringSubmatchIndex(line, -1) {
		open := m[1] - 1
		closePos, ok := matchCloser(line, open, '(', ')')
		if !ok {
			continue
		}
		inner := line[open+1 : closePos]
		calls = append(calls, Call{
			Name:  line[m[2]:m[3]],
			Form:  CallParen,
			Start: m[0],
			End:   closePos + 1,
			Args:  splitArgs(inner, false),
			Inner: inner,
		})
	}
	for _, m := range braceCallRx.FindAllStringSubmatchIndex(line, -1) {
		closePos, ok := matchCloser(line, m[0], '{', '}')
		if !ok {
			continue
		}
		inner := line[m[1]:closePos]
		calls = append(calls, Call{
			Name:  line[m[2]:m[3]],
			Form:  CallBrace,
			Start: m[0],
			End:   closePos + 1,
			Args:  splitArgs(inner, true),
			Inner: inner,
		})
	}
	sort.SliceStable(calls, func(i, j int) bool { return calls[i].Start < calls[j].Start })
	return calls
}

// matchCloser walks forward from the opener at open and returns the offset of
// the closer that brings depth back to zero.
func matchCloser(line string, open int, opener, closer byte) (int, bool) {
	depth := 1
	pos := open
	for pos < len(line)-1 && depth > 0 {
		pos++
		switch line[pos] {
		case opener:
			depth++
		case closer:
			depth--
		}
	}
	return pos, depth == 0
}

// splitArgs splits on commas at nesting depth zero. A character preceded by a
// backslash is taken verbatim. Brace nesting only counts for the brace form.
// A trailing blank argument is not kept.
func splitArgs(inner string, braces bool) []string {
	var (
		args  []string
		buf   strings.Builder
		depth int
	)
	for k := 0; k < len(inner); k++ {
		c := inner[k]
		if k > 0 && inner[k-1] == '\\' {
			buf.WriteByte(c)
			continue
		}
		switch {
		case c == '(' || (braces && c == '{'):
			depth++
			buf.WriteByte(c)
		case c == ')' || (braces && c == '}'):
			depth--
			buf.WriteByte(c)
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(buf.String()))
			buf.Reset()
		default:
			buf.WriteByte(c)
		}
	}
	if last := strings.TrimSpace(buf.String()); last != "" {
		args = append(args, last)
	}
	return args
}
