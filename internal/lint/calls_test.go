package lint

import (
	"reflect"
	"testing"
)

func TestFindCalls(t *testing.T) {
	calls := FindCalls("think [if(eq(%0,1), {hasflag:me,WIZARD}, no)] frob(")
	if len(calls) != 3 {
		t.Fatalf("expected 3 calls, got %+v", calls)
	}

	outer := calls[0]
	if outer.Name != "if" || outer.Form != CallParen || outer.Start != 7 {
		t.Fatalf("unexpected outer call %+v", outer)
	}
	wantArgs := []string{"eq(%0,1)", "{hasflag:me", "WIZARD}", "no"}
	if !reflect.DeepEqual(outer.Args, wantArgs) {
		t.Fatalf("paren form counts only parens: got %q, want %q", outer.Args, wantArgs)
	}

	if calls[1].Name != "eq" || calls[1].ArgCount() != 2 {
		t.Fatalf("unexpected eq call %+v", calls[1])
	}
	brace := calls[2]
	if brace.Name != "hasflag" || brace.Form != CallBrace {
		t.Fatalf("unexpected brace call %+v", brace)
	}
	if !reflect.DeepEqual(brace.Args, []string{"me", "WIZARD"}) {
		t.Fatalf("unexpected brace args %q", brace.Args)
	}
}

func TestSplitArgs(t *testing.T) {
	cases := []struct {
		in     string
		braces bool
		want   []string
	}{
		{"a, b ,c", false, []string{"a", "b", "c"}},
		{"a,", false, []string{"a"}},
		{",a", false, []string{"", "a"}},
		{"a\\,b,c", false, []string{"a\\,b", "c"}},
		{"f(1,2),3", false, []string{"f(1,2)", "3"}},
		{"{x,y},z", false, []string{"{x", "y}", "z"}},
		{"{x,y},z", true, []string{"{x,y}", "z"}},
		{"   ", false, nil},
	}
	for _, tc := range cases {
		if got := splitArgs(tc.in, tc.braces); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitArgs(%q, %v) = %q, want %q", tc.in, tc.braces, got, tc.want)
		}
	}
}

func TestEnclosingCall(t *testing.T) {
	cases := []struct {
		prefix string
		name   string
		arg    int
		ok     bool
	}{
		{"think add(", "add", 0, true},
		{"think add(1,", "add", 1, true},
		{"think add(1, mul(2,3), ", "add", 2, true},
		{"think add(1, mul(2,", "mul", 1, true},
		{"think {if:x,", "if", 1, true},
		{"think add (", "add", 0, true},
		{"think add(a\\,", "add", 0, true},
		{"think add(1)", "", 0, false},
		{"think [(", "", 0, false},
		{"", "", 0, false},
	}
	for _, tc := range cases {
		site, ok := EnclosingCall(tc.prefix)
		if ok != tc.ok {
			t.Errorf("%q: ok = %v, want %v", tc.prefix, ok, tc.ok)
			continue
		}
		if !ok {
			continue
		}
		if site.Name != tc.name || site.ActiveArg != tc.arg {
			t.Errorf("%q: got %s/%d, want %s/%d", tc.prefix, site.Name, site.ActiveArg, tc.name, tc.arg)
		}
	}
}
