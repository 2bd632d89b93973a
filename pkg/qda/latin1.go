package qda

import "golang.org/x/text/encoding/charmap"

// encodeLatin1 converts s to ISO 8859-1 bytes. Runes outside the Latin-1
// repertoire make it fail.
func encodeLatin1(s string) ([]byte, error) {
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
}

// decodeLatin1 converts ISO 8859-1 bytes to a UTF-8 string. Every byte value
// maps to a rune, so conversion cannot fail.
func decodeLatin1(b []byte) string {
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(s)
}
