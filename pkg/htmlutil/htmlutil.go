package htmlutil

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// CleanText strips non-printable runes, trims the ends and collapses runs of
// whitespace into a single space.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// Text is the cleaned text content of the first node in the selection.
func Text(sel *goquery.Selection) string {
	if sel == nil || len(sel.Nodes) == 0 {
		return ""
	}
	return CleanText(GetText(sel.Nodes[0]))
}

// NextText returns the first non-blank text that follows the start of the element
// in document order, this includes the element's own descendants. It is used for
// labels that sit beside an icon rather than inside a dedicated element.
func NextText(sel *goquery.Selection) (string, bool) {
	if sel == nil || len(sel.Nodes) == 0 {
		return "", false
	}
	for node := nextInDocument(sel.Nodes[0]); node != nil; node = nextInDocument(node) {
		if node.Type != html.TextNode {
			continue
		}
		text := CleanText(node.Data)
		if text != "" {
			return text, true
		}
	}
	return "", false
}

func nextInDocument(node *html.Node) *html.Node {
	if node.FirstChild != nil {
		return node.FirstChild
	}
	for node != nil {
		if node.NextSibling != nil {
			return node.NextSibling
		}
		node = node.Parent
	}
	return nil
}

// SoleString returns the text of an element whose content is a single string,
// descending through elements that have exactly one child. Elements with mixed
// content have no sole string.
func SoleString(node *html.Node) (string, bool) {
	for node != nil {
		if node.Type == html.TextNode {
			return node.Data, true
		}
		if node.FirstChild == nil || node.FirstChild != node.LastChild {
			return "", false
		}
		node = node.FirstChild
	}
	return "", false
}

// ResolveHref resolves an href found on a page against the page's base url.
func ResolveHref(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// LastPathSegment is the last non-empty segment of a link's path,
// "/org/model/" gives "model".
func LastPathSegment(href string) string {
	path := href
	parsed, err := url.Parse(href)
	if err == nil {
		path = parsed.Path
	}
	segments := strings.Split(strings.Trim(path, "/"), "/")
	return segments[len(segments)-1]
}
