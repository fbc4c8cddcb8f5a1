package format

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MaruForge/PennMUSHSoftcodeTools/internal/lint"
)

var prettyHeaderRx = regexp.MustCompile(`^(&[^\s=]+)\s+([^\s=]+)=(.*)$`)

// Block is an attribute assignment together with its continuation lines.
type Block struct {
	Start  int // first line
	End    int // one past the last line
	Header string
	Value  string
}

// FormatValue splits value on bracket groups and %R with the default width.
func FormatValue(value string) []string {
	return formatValue(value, Options{}.withDefaults())
}

func formatValue(value string, opts Options) []string {
	var (
		out   []string
		buf   strings.Builder
		depth int
	)
	emit := func(s string) {
		out = append(out, opts.indent(depth)+s)
	}

	for idx := 0; idx < len(value); {
		ch := value[idx]
		switch {
		case ch == '[':
			if t := strings.TrimSpace(buf.String()); t != "" {
				emit(t)
			}
			buf.Reset()
			buf.WriteByte('[')
			depth++
			idx++
		case ch == ']':
			buf.WriteByte(']')
			emit(strings.TrimSpace(buf.String()))
			buf.Reset()
			depth = max(0, depth-1)
			idx++
		case strings.HasPrefix(value[idx:], "%R"):
			if t := strings.TrimSpace(buf.String()); t != "" {
				emit(t)
				buf.Reset()
			}
			emit("%R")
			idx += 2
		default:
			buf.WriteByte(ch)
			idx++
		}
	}
	if t := strings.TrimSpace(buf.String()); t != "" {
		emit(t)
	}
	return out
}

// FindBlocks discovers `&ATTR obj=value` blocks in document order. A block
// absorbs following lines until a blank line, another header or a line that
// starts with '@'. Blocks whose value is empty are dropped.
func FindBlocks(lines []string) []Block {
	var blocks []Block
	for i := 0; i < len(lines); i++ {
		m := prettyHeaderRx.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		var vals []string
		if first := strings.TrimSpace(m[3]); first != "" {
			vals = append(vals, first)
		}
		j := i + 1
		for j < len(lines) &&
			!prettyHeaderRx.MatchString(lines[j]) &&
			!strings.HasPrefix(lines[j], "@") &&
			strings.TrimSpace(lines[j]) != "" {
			vals = append(vals, strings.TrimSpace(lines[j]))
			j++
		}
		if value := strings.TrimSpace(strings.Join(vals, " ")); value != "" {
			blocks = append(blocks, Block{Start: i, End: j, Header: m[1] + " " + m[2] + "=", Value: value})
		}
		i = j - 1
	}
	return blocks
}

// Prettify returns one edit per block, bottom-up.
func Prettify(text string, opts Options) []Edit {
	opts = opts.withDefaults()
	blocks := FindBlocks(lint.SplitLines(text))
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Start > blocks[j].Start })

	edits := make([]Edit, 0, len(blocks))
	base := opts.indent(1)
	for _, b := range blocks {
		formatted := formatValue(b.Value, opts)
		var sb strings.Builder
		sb.WriteString(b.Header)
		sb.WriteByte('\n')
		for i, l := range formatted {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(base)
			sb.WriteString(l)
		}
		sb.WriteByte('\n')
		edits = append(edits, Edit{StartLine: b.Start, EndLine: b.End, NewText: sb.String()})
	}
	return edits
}

// PrettifySource applies Prettify and reports whether the text changed.
func PrettifySource(text string, opts Options) (string, bool, error) {
	out, err := Apply(text, Prettify(text, opts))
	if err != nil {
		return text, false, err
	}
	return out, out != text, nil
}
