package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// CleanText prepares raw user content for language analysis. Social posts
// arrive with HTML fragments, URLs, mentions and hashtags that carry no
// linguistic signal and skew the script composition, so everything
// non-linguistic is stripped before detection sees the text.
func CleanText(s string) string {
	if s == "" {
		return s
	}

	if looksLikeHTML(s) {
		if t := htmlToText(s); t != "" {
			s = t
		} else {
			s = stripTagsFallback(s)
		}
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = reURL.ReplaceAllString(s, " ")
	s = reEmail.ReplaceAllString(s, " ")
	s = reMention.ReplaceAllString(s, " ")
	// Hashtags keep their word: #khushi is still a Hindi word.
	s = reHashMark.ReplaceAllString(s, "$1")
	s = reRepeatedPunct.ReplaceAllString(s, "$1")
	s = CollapseElongations(s)

	lines := strings.Split(s, "\n")
	outLines := make([]string, 0, len(lines))
	for _, ln := range lines {
		trim := strings.TrimSpace(ln)
		if trim == "" {
			continue
		}
		outLines = append(outLines, trim)
	}
	s = strings.Join(outLines, "\n")

	s = reMultiWS.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = trimNonLetters(s)
	return strings.TrimSpace(s)
}

// CollapseElongations shortens social-media stretches like "soooo" to a
// double letter, which keeps emphasis visible without confusing n-gram
// models. Only ASCII letter runs are collapsed; native-script and symbol
// runs pass through untouched.
func CollapseElongations(s string) string {
	r := []rune(s)
	out := make([]rune, 0, len(r))
	run := 0
	for i, ch := range r {
		if i > 0 && ch == r[i-1] && isASCIILetter(ch) {
			run++
		} else {
			run = 1
		}
		if run <= 2 {
			out = append(out, ch)
		}
	}
	return string(out)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func looksLikeHTML(s string) bool {
	l := strings.ToLower(s)
	if strings.Contains(l, "<html") || strings.Contains(l, "<body") {
		return true
	}
	if strings.Contains(l, "<div") || strings.Contains(l, "<span") || strings.Contains(l, "<p") {
		return true
	}
	if strings.Contains(l, "&nbsp;") {
		return true
	}
	if strings.Contains(l, "<br") || strings.Contains(l, "<a ") {
		return true
	}
	return false
}

func htmlToText(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}
	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.TextNode {
			txt := strings.TrimSpace(n.Data)
			if txt != "" {
				if b.Len() > 0 {
					last := b.String()[b.Len()-1]
					if last != '\n' && last != ' ' {
						b.WriteByte(' ')
					}
				}
				b.WriteString(txt)
			}
			return
		}
		if n.Type == html.ElementNode {
			if n.Data == "script" || n.Data == "style" {
				return
			}
			block := isBlockElement(n.Data)
			if block && b.Len() > 0 {
				b.WriteString("\n")
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				f(c)
			}
			if block && b.Len() > 0 {
				b.WriteString("\n")
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	out := b.String()
	out = strings.ReplaceAll(out, "\u00a0", " ")
	out = reMultiWS.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func stripTagsFallback(s string) string {
	out := reTags.ReplaceAllString(s, " ")
	out = reMultiWS.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func isBlockElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "p", "div", "br", "li", "ul", "ol", "table", "tr", "td", "header", "footer", "section", "article", "h1", "h2", "h3", "h4":
		return true
	default:
		return false
	}
}

var (
	reTags = regexp.MustCompile(`(?s)<[^>]*>`)

	reURL = regexp.MustCompile(`(?i)\bhttps?://[^\s]+|\bwww\.[^\s]+`)

	reEmail = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)

	reMention = regexp.MustCompile(`@[A-Za-z0-9_.]+`)

	reHashMark = regexp.MustCompile(`#(\w+)`)

	reRepeatedPunct = regexp.MustCompile(`([!?.])[!?.]{2,}`)

	reMultiWS = regexp.MustCompile(`\s{2,}`)
)

// trimNonLetters drops leading and trailing runs of symbols so stray emoji
// or bullet characters don't count against the script composition.
func trimNonLetters(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	start := -1
	end := len(r)
	for i, ch := range r {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			start = i
			break
		}
	}
	if start == -1 {
		return ""
	}
	for i := len(r) - 1; i >= 0; i-- {
		if unicode.IsLetter(r[i]) || unicode.IsDigit(r[i]) {
			end = i + 1
			break
		}
	}
	return strings.TrimSpace(string(r[start:end]))
}
