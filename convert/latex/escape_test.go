package latex

import "testing"

func TestEscape(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"clean text", "nothing to do here", "nothing to do here"},
		{"ampersand and percent", "Smith & Sons, 100% genuine", `Smith \& Sons, 100\% genuine`},
		{"money and math", "$5 for x^2", `\$5 for x\textasciicircum{}2`},
		{"backslash first", `a\&b`, `a\textbackslash{}\&b`},
		{"braces", "set {a, b}", `set \{a, b\}`},
		{"underscore and hash", "file_name #2", `file\_name \#2`},
		{"tilde", "~equal", `\textasciitilde{}equal`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Escape(tc.in); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
