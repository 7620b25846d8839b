package prm

import (
	"reflect"
	"strings"
	"testing"
)

func TestStripLines(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "line comment",
			raw:  []string{"keep this // drop this"},
			want: []string{"keep this"},
		},
		{
			name: "block comment across lines",
			raw:  []string{"a /* start", "anything at all", "end */ b"},
			want: []string{"a", "b"},
		},
		{
			name: "two block comments on one line",
			raw:  []string{"x /*c1*/ y /*c2*/ z"},
			want: []string{"x y z"},
		},
		{
			name: "comment between tokens separates them",
			raw:  []string{"a/**/b"},
			want: []string{"a b"},
		},
		{
			name: "comment between numbers keeps two fields",
			raw:  []string{"10/*c*/20"},
			want: []string{"10 20"},
		},
		{
			name: "blank and comment-only lines dropped",
			raw:  []string{"", "   ", "// only", "/* only */", "\tvalue\t"},
			want: []string{"value"},
		},
		{
			name: "closer must follow opener",
			raw:  []string{"a /*/ b", "c */ d"},
			want: []string{"a", "d"},
		},
		{
			name: "prefix before unterminated opener keeps line comment rule",
			raw:  []string{"a // note /* x", "still visible"},
			want: []string{"a"},
		},
		{
			name: "stray closer outside block is content",
			raw:  []string{"a */ b"},
			want: []string{"a */ b"},
		},
		{
			name: "unterminated block at end of file",
			raw:  []string{"value", "/* never closed", "lost"},
			want: []string{"value"},
		},
		{
			name: "closed then line comment",
			raw:  []string{"/* head */ v 1 // tail"},
			want: []string{"v 1"},
		},
		{
			name: "close and reopen on one line",
			raw:  []string{"/* a", "b */ c /* d", "e */ f"},
			want: []string{"c", "f"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Texts(StripLines(tt.raw))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StripLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripLinesNumbers(t *testing.T) {
	lines := StripLines([]string{"// head", "first", "/*", "*/", "second"})
	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2", len(lines))
	}
	if lines[0].No != 2 || lines[1].No != 5 {
		t.Errorf("line numbers = %d, %d, want 2, 5", lines[0].No, lines[1].No)
	}
}

func TestStripIdempotent(t *testing.T) {
	raw := []string{
		"uniVang-ParametersFile_Ver_1",
		"Podish 0 2 /* cycles */",
		"\"Eleepod Cycle\" 10 20 30 pal/eleepod.pal // stage",
		"none",
		"/* block",
		"   comment */ a */ b",
		"x /*c1*/ y /*c2*/ z",
	}
	once := Texts(StripLines(raw))
	twice := Texts(StripLines(once))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed output:\n once  %q\n twice %q", once, twice)
	}
}

func TestStripState(t *testing.T) {
	var s StripState
	if s.InBlock() {
		t.Fatal("zero state must be outside a block")
	}

	text, s := s.Strip("a /* open")
	if text != "a" || !s.InBlock() {
		t.Errorf("Strip(open) = %q, inBlock=%v", text, s.InBlock())
	}

	text, s = s.Strip("inside")
	if text != "" || !s.InBlock() {
		t.Errorf("Strip(inside) = %q, inBlock=%v", text, s.InBlock())
	}

	text, s = s.Strip("*/ out")
	if text != "out" || s.InBlock() {
		t.Errorf("Strip(close) = %q, inBlock=%v", text, s.InBlock())
	}
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("a\r\n// c\r\nb\n"))
	if err != nil {
		t.Fatalf("ReadLines() error: %v", err)
	}
	if got := Texts(lines); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ReadLines() = %q", got)
	}
}
