package lint

import "regexp"

// CallSite is the innermost unclosed call enclosing a cursor.
type CallSite struct {
	Name string
	Form CallForm
	// Open is the byte offset of the opener, '(' or '{'.
	Open int
	// ActiveArg counts top-level commas between the opener and the cursor.
	ActiveArg int
}

var (
	trailingIdentRx = regexp.MustCompile(`([A-Za-z_]\w*)\s*$`)
	leadingBraceRx  = regexp.MustCompile(`^\{([A-Za-z_]\w*):`)
)

type openGroup struct {
	char   byte
	pos    int
	commas int
}

// EnclosingCall finds the innermost named call that is still open at the end
// of prefix, the text of a line up to the cursor.
func EnclosingCall(prefix string) (CallSite, bool) {
	var stack []openGroup
	for i := 0; i < len(prefix); i++ {
		ch := prefix[i]
		if i > 0 && prefix[i-1] == '\\' {
			continue
		}
		switch ch {
		case '(', '{':
			stack = append(stack, openGroup{char: ch, pos: i})
		case ')', '}':
			if n := len(stack); n > 0 && stack[n-1].char == closerFor[ch] {
				stack = stack[:n-1]
			}
		case ',':
			if n := len(stack); n > 0 {
				stack[n-1].commas++
			}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		g := stack[i]
		switch g.char {
		case '(':
			if m := trailingIdentRx.FindStringSubmatch(prefix[:g.pos]); m != nil {
				return CallSite{Name: m[1], Form: CallParen, Open: g.pos, ActiveArg: g.commas}, true
			}
		case '{':
			if m := leadingBraceRx.FindStringSubmatch(prefix[g.pos:]); m != nil {
				return CallSite{Name: m[1], Form: CallBrace, Open: g.pos, ActiveArg: g.commas}, true
			}
		}
	}
	return CallSite{}, false
}
