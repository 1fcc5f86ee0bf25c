package http

import (
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// degenerateEncoding is the WHATWG name that Latin-1, ASCII and a missing
// declaration all resolve to. It carries no information about Cyrillic text.
const degenerateEncoding = "windows-1252"

// decodeBody converts body to UTF-8.
//
// A declared charset is trusted unless it is degenerate. For degenerate or
// missing declarations the document's own meta tags are consulted, and UTF-8
// is assumed when they say nothing better.
func decodeBody(body []byte, contentType string) (string, error) {
	enc, name := declaredEncoding(contentType)
	if enc == nil || name == degenerateEncoding {
		enc, name, _ = charset.DetermineEncoding(body, "text/html")
		if name == degenerateEncoding {
			enc, name = encoding.Nop, "utf-8"
		}
	}

	if name == "utf-8" || enc == encoding.Nop {
		return strings.ToValidUTF8(string(body), "\uFFFD"), nil
	}

	s, _, err := transform.String(enc.NewDecoder(), string(body))
	if err != nil {
		return "", err
	}
	return s, nil
}

// declaredEncoding returns the encoding named by the charset parameter of a
// Content-Type header, or nil when there is none or it is unknown.
func declaredEncoding(contentType string) (encoding.Encoding, string) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, ""
	}
	cs, ok := params["charset"]
	if !ok {
		return nil, ""
	}
	return charset.Lookup(cs)
}
