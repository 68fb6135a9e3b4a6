// Package base64ext provides the strict, unpadded base64 variant used by
// the PHC string format for salt and digest fields.
package base64ext

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCharacter is returned when the input contains \r or \n.
var ErrInvalidCharacter = errors.New("base64ext: invalid character")

// EncodeToString encodes a byte slice to unpadded standard base64.
func EncodeToString(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}

// DecodeString decodes an unpadded standard base64 string using strict
// decoding and rejects any input containing \r or \n characters.
func DecodeString(s string) ([]byte, error) {
	if strings.ContainsAny(s, "\r\n") {
		return nil, ErrInvalidCharacter
	}
	return base64.RawStdEncoding.Strict().DecodeString(s)
}
