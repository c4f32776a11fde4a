package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText returns the concatenated text content of an HTML fragment,
// trimmed. Text nodes are joined without separators, so the words keep
// whatever spacing the markup carried.
func ExtractText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(buf.String()), nil
}
