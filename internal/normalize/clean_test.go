package normalize

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "hello world", "hello world"},
		{"url stripped", "check https://example.com/page now", "check now"},
		{"email stripped", "write to someone@example.com please", "write to please"},
		{"mention stripped", "@someuser kya haal hai", "kya haal hai"},
		{"hashtag keeps word", "feeling #khushi today", "feeling khushi today"},
		{"repeated punct collapsed", "wow!!!! really????", "wow! really"},
		{"html", "<div><p>namaste <b>dost</b></p></div>", "namaste dost"},
		{"nbsp entity", "hello&nbsp;world", "hello world"},
		{"devanagari untouched", "नमस्ते दुनिया", "नमस्ते दुनिया"},
		{"whitespace collapsed", "too    many   spaces", "too many spaces"},
		{"elongation collapsed", "sooooo coool yaar", "soo cool yaar"},
	}
	for _, c := range cases {
		if got := CleanText(c.in); got != c.want {
			t.Fatalf("%s: CleanText(%q)=%q want %q", c.name, c.in, got, c.want)
		}
	}
}

func TestCleanText_SymbolOnly(t *testing.T) {
	for _, in := range []string{"!!!", "...", "@@@", "→ ← ↑"} {
		if got := CleanText(in); got != "" {
			t.Fatalf("CleanText(%q)=%q want empty", in, got)
		}
	}
}

func TestCollapseElongations(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"soooo good", "soo good"},
		{"yesss", "yess"},
		{"normal", "normal"},
		{"heyyyyyyy broooo", "heyy broo"},
		{"Sooo NICEEE", "Soo NICEE"},
		{"aaaa!!!! bbbb", "aa!!!! bb"},
		{"नननन", "नननन"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CollapseElongations(c.in); got != c.want {
			t.Fatalf("CollapseElongations(%q)=%q want %q", c.in, got, c.want)
		}
	}
}
