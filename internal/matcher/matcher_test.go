package matcher

import "testing"

func TestPrefixMatch(t *testing.T) {
	m := New("2024-01-01")

	tests := []struct {
		line string
		want bool
	}{
		{"2024-01-01 start\n", true},
		{"2024-01-01", true},
		{"2024-01-02 other\n", false},
		{" 2024-01-01 indented\n", false},
		{"prefix 2024-01-01\n", false},
		{"", false},
		{"2024-01-0", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.line); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestPrefixMetacharactersAreLiteral(t *testing.T) {
	tests := []struct {
		date string
		line string
		want bool
	}{
		// "." must not act as a wildcard.
		{"2024.01.01", "2024.01.01 ok\n", true},
		{"2024.01.01", "2024-01-01 wildcard\n", false},
		// "*" must not repeat the previous character.
		{"a*", "a* literal\n", true},
		{"a*", "aaa\n", false},
		{"a*", "b\n", false},
		// "[" must not open a class.
		{"[2024]", "[2024] bracketed\n", true},
		{"[2024]", "2 class\n", false},
		// Anchors and alternation inside the date stay literal.
		{"^x|y$", "^x|y$ tail\n", true},
		{"^x|y$", "y\n", false},
		{`\d`, `\d literal`, true},
		{`\d`, "7", false},
	}

	for _, tt := range tests {
		if got := New(tt.date).Match(tt.line); got != tt.want {
			t.Errorf("date %q: Match(%q) = %v, want %v", tt.date, tt.line, got, tt.want)
		}
	}
}

func TestPrefixInvalidUTF8Date(t *testing.T) {
	m := New("\xff2024")
	if m.Literal() != "\xff2024" {
		t.Errorf("unexpected literal %q", m.Literal())
	}
	if m.Match("2024-01-01 start\n") {
		t.Error("expected no match for a line without the leading byte")
	}
	if !m.Match("\xff2024 raw\n") {
		t.Error("expected byte-exact prefix to match")
	}
}

func TestPrefixCaseSensitive(t *testing.T) {
	m := New("Jan")
	if m.Match("jan 01 boot\n") {
		t.Error("expected case-sensitive match")
	}
	if !m.Match("Jan 01 boot\n") {
		t.Error("expected exact-case line to match")
	}
}

func TestPrefixEmptyDateMatchesEverything(t *testing.T) {
	m := New("")
	if !m.Match("anything\n") || !m.Match("") {
		t.Error("empty date should match every line")
	}
}

func TestPrefixDeterministic(t *testing.T) {
	a := New("2024-01-01[x]")
	b := New("2024-01-01[x]")
	for _, line := range []string{"2024-01-01[x] y\n", "2024-01-01x\n", ""} {
		if a.Match(line) != b.Match(line) {
			t.Errorf("matchers built from the same date disagree on %q", line)
		}
	}
}
