package oireachtas

import (
	"bytes"
	"unicode"
)

const (
	minRecordSize = 100
	sniffWindow   = 500
)

var (
	htmlDoctype = []byte("<!doctype html")
	htmlTag     = []byte("<html")
	xmlDecl     = []byte("<?xml")
)

// LooksLikeXML reports whether a response body is plausibly a debate XML
// document. The endpoint answers some unknown dates with HTML error pages
// behind a 200, so status alone is not trusted: tiny bodies are rejected,
// HTML doctypes and tags are rejected, and anything else opening with an
// XML declaration or a tag is accepted.
func LooksLikeXML(content []byte) bool {
	if len(content) < minRecordSize {
		return false
	}

	head := bytes.TrimLeftFunc(content, unicode.IsSpace)
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	head = bytes.ToLower(head)

	if bytes.HasPrefix(head, htmlDoctype) || bytes.HasPrefix(head, htmlTag) {
		return false
	}
	return bytes.HasPrefix(head, xmlDecl) || bytes.HasPrefix(head, []byte("<"))
}
