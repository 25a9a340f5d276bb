package telegram

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Bot API limits.
const (
	// maxCallbackDataLen is the callback_data size limit in bytes.
	maxCallbackDataLen = 64
	// maxTextLen and maxCaptionLen count visible characters, after entity parsing.
	maxTextLen    = 4096
	maxCaptionLen = 1024
)

// htmlText is markup that is safe to send with ParseMode HTML.
type htmlText string

func esc(s string) htmlText { return htmlText(html.EscapeString(s)) }

func wrap(tag string, inner htmlText) htmlText {
	return htmlText("<" + tag + ">" + string(inner) + "</" + tag + ">")
}

func bold(s string) htmlText   { return wrap("b", esc(s)) }
func italic(s string) htmlText { return wrap("i", esc(s)) }

func link(url string, inner htmlText) htmlText {
	return htmlText(`<a href="` + html.EscapeString(url) + `">` + string(inner) + "</a>")
}

// joinHTML joins the non-blank parts with sep.
func joinHTML(sep string, parts ...htmlText) htmlText {
	ss := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(string(p)) == "" {
			continue
		}
		ss = append(ss, string(p))
	}
	return htmlText(strings.Join(ss, sep))
}

var tagRE = regexp.MustCompile(`<[^>]*>`)

// visibleLen is the character count Telegram checks against its limits.
func visibleLen(h htmlText) int {
	return utf8.RuneCountInString(html.UnescapeString(tagRE.ReplaceAllString(string(h), "")))
}

// truncRunes returns s truncated to at most n runes, the last one being "…"
// when something was cut.
func truncRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n-1 {
			return s[:i] + "…"
		}
		count++
	}
	return s
}
