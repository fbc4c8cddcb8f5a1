package lsp

import (
	"strings"
	"testing"
)

func TestFoldingRanges(t *testing.T) {
	src := strings.Join([]string{
		"@create Widget",
		"&GREET Widget=",
		"  $greet *:@pemit %#=Hello",
		"    [name(%#)]",
		"&SHORT Widget=x",
		"&COUNT Widget=",
		"  items",
		"",
	}, "\n")
	got := buildFoldingRanges(src)
	if len(got) != 2 {
		t.Fatalf("expected 2 ranges, got %+v", got)
	}
	if got[0].StartLine != 1 || got[0].EndLine != 3 {
		t.Fatalf("unexpected first range %+v", got[0])
	}
	if got[1].StartLine != 5 || got[1].EndLine != 6 {
		t.Fatalf("unexpected second range %+v", got[1])
	}
}
