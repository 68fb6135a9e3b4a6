// pwhash-go: Argon2 password hashing and verification
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argon2 provides Argon2 key derivation and the PHC encoded-hash
// format.
//
// https://datatracker.ietf.org/doc/html/rfc9106
package argon2

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dark-bio/pwhash-go/internal/base64ext"
)

// Version is the only Argon2 version this package produces or accepts (0x13).
const Version = argon2.Version

// Type selects the Argon2 variant.
type Type uint8

// The three Argon2 variants of RFC 9106. The zero value is TypeID, the
// variant recommended for password hashing. TypeD is declared for
// completeness of the encoded-hash grammar but cannot be computed, see [Key].
const (
	TypeID Type = iota
	TypeI
	TypeD
)

var (
	// ErrUnsupportedType is returned for Argon2d, which the underlying
	// implementation does not provide, and for Type values outside the
	// declared constants.
	ErrUnsupportedType = errors.New("argon2: unsupported variant")

	// ErrInvalidCosts is returned when time or parallelism is zero.
	ErrInvalidCosts = errors.New("argon2: time and parallelism must be at least 1")

	// ErrInvalidEncoding is returned by Decode when the input does not
	// conform to the PHC encoded-hash grammar.
	ErrInvalidEncoding = errors.New("argon2: invalid encoded hash")
)

// String returns the PHC tag for the variant ("argon2d", "argon2i",
// "argon2id").
func (t Type) String() string {
	switch t {
	case TypeD:
		return "argon2d"
	case TypeI:
		return "argon2i"
	case TypeID:
		return "argon2id"
	}
	return "argon2(" + strconv.Itoa(int(t)) + ")"
}

// ParseType maps a PHC tag back to its variant.
func ParseType(tag string) (Type, error) {
	switch tag {
	case "argon2d":
		return TypeD, nil
	case "argon2i":
		return TypeI, nil
	case "argon2id":
		return TypeID, nil
	}
	return 0, fmt.Errorf("%w: unknown tag %q", ErrInvalidEncoding, tag)
}

// Key derives a key of keyLen bytes from the password and salt using the
// given Argon2 variant, returning a byte slice that can be used as a
// cryptographic key or compared against a stored digest.
//
// The time parameter specifies the number of passes over the memory and the
// memory parameter specifies the size of the memory in KiB. Both time and
// threads must be at least 1; invalid costs are reported as errors rather
// than panics so callers can treat derivation failures uniformly.
//
// TypeD fails with ErrUnsupportedType: golang.org/x/crypto/argon2 implements
// only the data-independent (Argon2i) and hybrid (Argon2id) variants, and
// Argon2d has no place in password hashing.
//
// RFC 9106 Section 4 recommends Argon2id with time=1 and memory=2048*1024 as
// the first choice, and time=3, memory=64*1024 when 2GB of memory is not
// available.
func Key(t Type, password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) ([]byte, error) {
	if time < 1 || threads < 1 {
		return nil, ErrInvalidCosts
	}
	switch t {
	case TypeI:
		return argon2.Key(password, salt, time, memory, threads, keyLen), nil
	case TypeID:
		return argon2.IDKey(password, salt, time, memory, threads, keyLen), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, t)
}

// HashEncoded derives a key like [Key] and serializes the parameters, salt,
// and digest in the PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<b64 salt>$<b64 digest>
//
// Salt and digest are unpadded standard base64.
func HashEncoded(t Type, password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) (string, error) {
	hash, err := Key(t, password, salt, time, memory, threads, keyLen)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		t, Version, memory, time, threads,
		base64ext.EncodeToString(salt),
		base64ext.EncodeToString(hash),
	), nil
}

// Decoded holds the fields recovered from a PHC encoded hash.
type Decoded struct {
	Type        Type
	Version     int
	Memory      uint32
	Time        uint32
	Parallelism uint8
	Salt        []byte
	Hash        []byte
}

// Decode parses a PHC encoded hash. It accepts exactly the grammar
// HashEncoded produces: six dollar-separated fields, a known variant tag, a
// v= field matching [Version], the cost fields in m,t,p order, and strict
// unpadded base64 for salt and digest. No derivation is performed.
func Decode(encoded string) (*Decoded, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: want 6 $-separated fields", ErrInvalidEncoding)
	}

	t, err := ParseType(parts[1])
	if err != nil {
		return nil, err
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, fmt.Errorf("%w: missing version field", ErrInvalidEncoding)
	}
	v, err := strconv.Atoi(version)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed version field", ErrInvalidEncoding)
	}
	if v != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidEncoding, v)
	}

	d := &Decoded{Type: t, Version: v}
	if err := decodeCosts(d, parts[3]); err != nil {
		return nil, err
	}

	if d.Salt, err = base64ext.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: malformed salt", ErrInvalidEncoding)
	}
	if d.Hash, err = base64ext.DecodeString(parts[5]); err != nil {
		return nil, fmt.Errorf("%w: malformed digest", ErrInvalidEncoding)
	}
	if len(d.Hash) == 0 {
		return nil, fmt.Errorf("%w: empty digest", ErrInvalidEncoding)
	}
	return d, nil
}

// decodeCosts parses the "m=...,t=...,p=..." field. The reference encoder
// always emits the costs in this order, so the order is required.
func decodeCosts(d *Decoded, field string) error {
	pairs := strings.Split(field, ",")
	if len(pairs) != 3 {
		return fmt.Errorf("%w: want 3 cost parameters", ErrInvalidEncoding)
	}
	for i, key := range []string{"m=", "t=", "p="} {
		value, ok := strings.CutPrefix(pairs[i], key)
		if !ok {
			return fmt.Errorf("%w: missing %q cost", ErrInvalidEncoding, key[:1])
		}
		bits := 32
		if key == "p=" {
			bits = 8
		}
		v, err := strconv.ParseUint(value, 10, bits)
		if err != nil || v == 0 {
			return fmt.Errorf("%w: malformed %q cost", ErrInvalidEncoding, key[:1])
		}
		switch key {
		case "m=":
			d.Memory = uint32(v)
		case "t=":
			d.Time = uint32(v)
		case "p=":
			d.Parallelism = uint8(v)
		}
	}
	return nil
}

// Verify recomputes the digest from the password and the decoded parameters
// and compares it against the stored digest in constant time. It returns
// false with a nil error on mismatch; a non-nil error means the derivation
// itself could not run.
func (d *Decoded) Verify(password []byte) (bool, error) {
	computed, err := Key(d.Type, password, d.Salt, d.Time, d.Memory, d.Parallelism, uint32(len(d.Hash)))
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(computed, d.Hash) == 1, nil
}
