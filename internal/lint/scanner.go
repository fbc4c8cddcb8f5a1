// Package lint implements the heuristic softcode scanner: bracket balance,
// function call arity, unknown commands and functions, and named registers.
//
// The scanner is line oriented. Only the bracket stack survives from one line
// to the next; escapes and call analysis never cross a line break.
package lint

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"fortio.org/safecast"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/diag"
	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/softcode"
)

// Options switches rule families on and off. Bracket and arity checks are always on.
type Options struct {
	UnknownFunctions bool
	UnknownCommands  bool
	Registers        bool
}

// DefaultOptions enables every rule.
func DefaultOptions() Options {
	return Options{
		UnknownFunctions: true,
		UnknownCommands:  true,
		Registers:        true,
	}
}

// Fingerprint encodes the options for cache keys.
func (o Options) Fingerprint() string {
	return fmt.Sprintf("f=%t,c=%t,r=%t", o.UnknownFunctions, o.UnknownCommands, o.Registers)
}

type bracket struct {
	char byte
	line int
	col  int
}

type arityRule struct {
	min int
	msg string
}

var (
	commandRx = regexp.MustCompile(`(^|\s)([@!][A-Za-z_]\w*)`)
	substRx   = regexp.MustCompile(`%([0-9!@#nN~:kqva-wxzi$+=SOpA])(?:<([^>]+)>)?`)

	closerFor = map[byte]byte{')': '(', '}': '{', ']': '['}

	arityRules = map[string]arityRule{
		"if":     {min: 2, msg: "'if' expects at least 2 arguments (condition and true-result), got %d"},
		"switch": {min: 4, msg: "'switch' expects at least 4 arguments, got %d"},
	}
)

// Scan runs every rule over text and returns diagnostics in emission order.
func Scan(text string, opts Options) []diag.Diagnostic {
	var r diag.SliceReporter
	ScanTo(text, opts, &r)
	return r.Items
}

// ScanTo runs the scanner and emits diagnostics into r.
func ScanTo(text string, opts Options, r diag.Reporter) {
	lines := SplitLines(text)
	s := &scanner{
		opts:     opts,
		reporter: r,
		attrs:    softcode.DefinedAttributes(lines),
	}
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "@@") {
			continue
		}
		s.brackets(i, line)
		s.calls(i, line)
		if opts.UnknownCommands {
			s.commands(i, line)
		}
		if opts.Registers {
			s.substitutions(i, line)
		}
	}
	for _, un := range s.stack {
		diag.ReportError(r, diag.LintUnmatchedOpener, span(un.line, un.col, un.col+1),
			fmt.Sprintf("Unmatched '%c'", un.char)).Emit()
	}
}

// SplitLines splits on LF and CRLF.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

type scanner struct {
	opts     Options
	reporter diag.Reporter
	attrs    map[string]struct{}
	stack    []bracket
}

func (s *scanner) brackets(lineNo int, line string) {
	for j := 0; j < len(line); j++ {
		if j > 0 && line[j-1] == '\\' {
			continue
		}
		ch := line[j]
		switch ch {
		case '(', '{', '[':
			s.stack = append(s.stack, bracket{char: ch, line: lineNo, col: j})
		case ')', '}', ']':
			if n := len(s.stack); n > 0 && s.stack[n-1].char == closerFor[ch] {
				s.stack = s.stack[:n-1]
				continue
			}
			diag.ReportError(s.reporter, diag.LintUnmatchedCloser, span(lineNo, j, j+1),
				fmt.Sprintf("Unmatched '%c'", ch)).Emit()
		}
	}
}

func (s *scanner) calls(lineNo int, line string) {
	for _, c := range FindCalls(line) {
		rng := span(lineNo, c.Start, c.End)
		// brace groups double as literal text, so only the paren form is name-checked
		if c.Form == CallParen && s.opts.UnknownFunctions && !softcode.Functions.Has(c.Name) {
			diag.ReportWarning(s.reporter, diag.LintUnknownFunction, rng,
				fmt.Sprintf("Unknown function '%s'", c.Name)).Emit()
		}
		if rule, ok := arityRules[softcode.Fold(c.Name)]; ok {
			if n := c.ArgCount(); n < rule.min {
				diag.ReportError(s.reporter, diag.LintArityTooFew, rng, fmt.Sprintf(rule.msg, n)).Emit()
			}
		}
	}
}

func (s *scanner) commands(lineNo int, line string) {
	for _, m := range commandRx.FindAllStringSubmatchIndex(line, -1) {
		cmd := line[m[4]:m[5]]
		if softcode.Commands.Has(cmd) {
			continue
		}
		diag.ReportWarning(s.reporter, diag.LintUnknownCommand, span(lineNo, m[4], m[5]),
			fmt.Sprintf("Unknown command '%s'", cmd)).Emit()
	}
}

func (s *scanner) substitutions(lineNo int, line string) {
	for _, m := range substRx.FindAllStringSubmatchIndex(line, -1) {
		if line[m[2]:m[3]] != "q" || m[4] < 0 {
			continue
		}
		name := line[m[4]:m[5]]
		if _, ok := s.attrs[name]; ok || softcode.IsBuiltinRegister(name) {
			continue
		}
		diag.ReportWarning(s.reporter, diag.LintUndefinedRegister, span(lineNo, m[0], m[1]),
			fmt.Sprintf("Use of undefined named register '%%q<%s>'", name)).Emit()
	}
}

func span(line, start, end int) diag.Range {
	return diag.Range{Line: coord(line), StartCol: coord(start), EndCol: coord(end)}
}

// coord clamps n into the uint32 range.
func coord(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		if n < 0 {
			return 0
		}
		return math.MaxUint32
	}
	return v
}
