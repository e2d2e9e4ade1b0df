package client

import (
	"mime"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts a response body to UTF-8 text.
// A byte order mark wins over the declared charset; an absent or unknown
// charset means UTF-8. Invalid sequences become U+FFFD. Nothing is guessed.
func DecodeText(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}

	enc := declaredEncoding(contentType)
	decoded, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), body)
	if err != nil {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}
	return strings.ToValidUTF8(string(decoded), "\uFFFD")
}

func declaredEncoding(contentType string) encoding.Encoding {
	if label := charsetParam(contentType); label != "" {
		if enc, _ := charset.Lookup(label); enc != nil {
			return enc
		}
	}
	return unicode.UTF8
}

// charsetParam extracts the charset parameter from a media type
func charsetParam(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(params["charset"]))
}
