package format

import "strings"

const minIndentWidth = 2

type Options struct {
	// IndentWidth is the number of spaces per nesting level. Collapse spots
	// continuation lines by a two-space prefix, so smaller values are raised to 2.
	IndentWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth < minIndentWidth {
		o.IndentWidth = minIndentWidth
	}
	return o
}

func (o Options) indent(depth int) string {
	return strings.Repeat(" ", o.IndentWidth*depth)
}
