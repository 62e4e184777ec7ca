package header

import "strings"

// tokenByte marks the bytes allowed in a header field name, which must be an
// RFC 7230 token.
var tokenByte [256]bool

func init() {
	for i := 0; i < 256; i++ {
		b := byte(i)
		switch {
		case b >= '0' && b <= '9',
			b >= 'A' && b <= 'Z',
			b >= 'a' && b <= 'z',
			strings.ContainsRune("!#$%&'*+-.^_`|~", rune(b)):
			tokenByte[b] = true
		}
	}
}

// isValidName reports whether s is a non-empty RFC 7230 token.
func isValidName(s string) bool {
	for i := 0; i < len(s); i++ {
		if !tokenByte[s[i]] {
			return false
		}
	}
	return s != ""
}

// isValidValue reports whether s is a legal header field value. The value is
// expected to already be normalized; NUL, CR, and LF are forbidden anywhere
// in it.
func isValidValue(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 0x00, '\r', '\n':
			return false
		}
	}
	return true
}

// normalizeValue strips leading and trailing HTTP whitespace (space, tab, CR,
// LF) from a header field value before it is validated or stored.
func normalizeValue(s string) string {
	return strings.Trim(s, " \t\r\n")
}
