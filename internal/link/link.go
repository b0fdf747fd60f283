// Package link turns a full phone number and a message into a wa.me deep link.
package link

import (
	"net/url"
	"strings"

	"github.com/pkg/browser"

	"rhystmorgan/waLink/internal/validation"
)

// BaseURL is the click-to-chat endpoint.
const BaseURL = "https://wa.me/"

// encodeURIComponent leaves these unescaped in addition to what url.QueryEscape keeps.
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent escapes s the way browsers escape a URI component.
func EncodeURIComponent(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

// Build returns the chat link for fullNumber, with ?text= only when message is
// non-empty. ok is false when the number is not a country code followed by a
// valid local number.
func Build(fullNumber, message string) (uri string, ok bool) {
	if !validation.IsValidFull(fullNumber) {
		return "", false
	}

	uri = BaseURL + fullNumber
	if message != "" {
		uri += "?text=" + EncodeURIComponent(message)
	}
	return uri, true
}

// Opener hands a link to the external chat application.
type Opener func(uri string) error

// Open launches uri in the system browser.
func Open(uri string) error {
	return browser.OpenURL(uri)
}
