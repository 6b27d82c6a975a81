package output

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	carriageReturnLineFeed = "\r\n"
	carriageReturn         = "\r"
	lineFeed               = "\n"
	replacementCharacter   = "\uFFFD"
)

// DecodeContent converts raw file bytes to text. Invalid UTF-8 is replaced with U+FFFD
// and Windows or classic Mac line endings become "\n".
func DecodeContent(data []byte) string {
	decoded, _, decodeError := transform.Bytes(unicode.UTF8.NewDecoder(), data)
	text := string(decoded)
	if decodeError != nil {
		text = strings.ToValidUTF8(string(data), replacementCharacter)
	}
	return normalizeLineEndings(text)
}

func normalizeLineEndings(text string) string {
	if !strings.Contains(text, carriageReturn) {
		return text
	}
	text = strings.ReplaceAll(text, carriageReturnLineFeed, lineFeed)
	return strings.ReplaceAll(text, carriageReturn, lineFeed)
}
