// pwhash-go: Argon2 password hashing and verification
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pwhash provides high-level password hashing over Argon2.
//
// A [Hasher] owns one validated parameter set and exposes hashing,
// verification, and rehash detection against PHC encoded hashes:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<parallelism>$<b64 salt>$<b64 digest>
//
// Parameter sets are validated against the execution environment when the
// Hasher is constructed: targets without thread support only accept a
// parallelism of 1. A constructed Hasher is immutable and safe for
// concurrent use; changing parameters means constructing a new Hasher.
package pwhash

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"unicode"

	"github.com/dark-bio/pwhash-go/argon2"
)

var (
	// ErrInvalidParams is returned by the constructors when a parameter
	// set violates its own invariants (a zero cost or length, or a
	// version the engine cannot compute).
	ErrInvalidParams = errors.New("pwhash: invalid parameters")

	// ErrUnsupportedParams is returned by the constructors when the
	// parameter set is internally consistent but the execution
	// environment cannot honor it.
	ErrUnsupportedParams = errors.New("pwhash: unsupported parameters")

	// ErrHash is returned when the hash computation itself fails.
	ErrHash = errors.New("pwhash: hashing failed")

	// ErrInvalidHash is returned when an encoded hash does not parse.
	// It is reported before any key derivation takes place.
	ErrInvalidHash = errors.New("pwhash: invalid encoded hash")

	// ErrMismatch is returned by Verify when the password does not match
	// the hash. It is distinct from every other error so callers cannot
	// conflate a wrong password with unprocessable input.
	ErrMismatch = errors.New("pwhash: password does not match")

	// ErrVerification is returned by Verify when the verification could
	// not be completed for a reason other than a mismatch.
	ErrVerification = errors.New("pwhash: verification failed")
)

// Hasher hashes and verifies passwords with a fixed parameter set.
type Hasher struct {
	params Params
}

// New builds a Hasher from p, filling every zero field with its default from
// [DefaultParams]. The environment-dependent parallelism default is computed
// here, at construction time. The completed set passes through the same
// validation gate as [NewFromParams]; on failure no Hasher is returned.
func New(p Params) (*Hasher, error) {
	d := DefaultParams()
	if p.Version == 0 {
		p.Version = d.Version
	}
	if p.Memory == 0 {
		p.Memory = d.Memory
	}
	if p.Time == 0 {
		p.Time = d.Time
	}
	if p.Parallelism == 0 {
		p.Parallelism = d.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = d.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = d.KeyLength
	}
	return NewFromParams(p)
}

// NewFromParams builds a Hasher from a complete parameter set, used exactly
// as given. The set is validated first: all costs and lengths must be
// positive, and the environment must support the requested parallelism.
func NewFromParams(p Params) (*Hasher, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Hasher{params: p}, nil
}

// Params returns the Hasher's live parameter set.
func (h *Hasher) Params() Params {
	return h.params
}

// Hash hashes the password with a fresh random salt of the configured length
// and returns the PHC encoded hash.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHash, err)
	}
	return h.HashWithSalt(password, salt)
}

// HashWithSalt hashes the password with a caller-provided salt. The caller
// takes over the uniqueness requirement on the salt; this exists for
// deterministic derivation and tests, not for storing credentials.
func (h *Hasher) HashWithSalt(password string, salt []byte) (string, error) {
	p := h.params
	encoded, err := argon2.HashEncoded(p.Type, []byte(password), salt, p.Time, p.Memory, p.Parallelism, p.KeyLength)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHash, err)
	}
	return encoded, nil
}

// Verify checks the password against a PHC encoded hash, using the
// parameters embedded in the hash. It returns nil only on a match.
// Mismatches, malformed hashes, and failed computations are three distinct
// errors: ErrMismatch, ErrInvalidHash, and ErrVerification. A hash that does
// not parse is rejected before any key derivation.
func (h *Hasher) Verify(encoded, password string) error {
	d, err := argon2.Decode(encoded)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	ok, err := d.Verify([]byte(password))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if !ok {
		return ErrMismatch
	}
	return nil
}

// NeedsRehash reports whether the parameters embedded in the encoded hash
// differ from the Hasher's live parameter set, signalling that the password
// should be re-hashed on the next successful verification. The comparison is
// structural over all fields (salt and key lengths are recovered from the
// decoded blob lengths); no key derivation takes place.
func (h *Hasher) NeedsRehash(encoded string) (bool, error) {
	d, err := argon2.Decode(encoded)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	parsed := Params{
		Type:        d.Type,
		Version:     d.Version,
		Memory:      d.Memory,
		Time:        d.Time,
		Parallelism: d.Parallelism,
		SaltLength:  uint32(len(d.Salt)),
		KeyLength:   uint32(len(d.Hash)),
	}
	return parsed != h.params, nil
}

// NeedsRehashBytes is NeedsRehash for an encoded hash held as bytes. The
// PHC grammar is printable ASCII, so the bytes must be 7-bit clean.
func (h *Hasher) NeedsRehashBytes(encoded []byte) (bool, error) {
	for _, b := range encoded {
		if b > unicode.MaxASCII {
			return false, fmt.Errorf("%w: non-ASCII byte in encoded hash", ErrInvalidHash)
		}
	}
	return h.NeedsRehash(string(encoded))
}
