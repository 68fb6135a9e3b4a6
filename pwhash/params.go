// pwhash-go: Argon2 password hashing and verification
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pwhash

import (
	"fmt"

	"github.com/dark-bio/pwhash-go/argon2"
)

// Params describes one Argon2 configuration: the variant, version, costs,
// and output lengths. Params is a comparable value; two sets are equal only
// when every field is equal, and any single differing field is what
// [Hasher.NeedsRehash] reports on. Memory is in KiB.
type Params struct {
	Type        argon2.Type
	Version     int
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams returns the RFC 9106 low-memory recommendation: Argon2id,
// three passes over 64 MiB with four lanes, a 16-byte salt, and a 32-byte
// key. On targets without thread support the parallelism is 1 instead; this
// is evaluated on every call, not frozen at process start.
//
// https://www.rfc-editor.org/rfc/rfc9106.html#section-4
func DefaultParams() Params {
	parallelism := uint8(4)
	if !SupportsParallelism() {
		parallelism = 1
	}
	return Params{
		Type:        argon2.TypeID,
		Version:     argon2.Version,
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: parallelism,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// validate is the single gate both constructors funnel through. The
// environmental rule is checked against the probe at call time: a
// parallelism other than 1 is unsupported wherever the environment cannot
// run parallel lanes.
func (p Params) validate() error {
	if p.Memory == 0 || p.Time == 0 || p.Parallelism == 0 || p.SaltLength == 0 || p.KeyLength == 0 {
		return fmt.Errorf("%w: costs and lengths must be positive", ErrInvalidParams)
	}
	if p.Version != argon2.Version {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidParams, p.Version)
	}
	if p.Parallelism != 1 && !SupportsParallelism() {
		return fmt.Errorf("%w: parallelism %d in a single-threaded environment", ErrUnsupportedParams, p.Parallelism)
	}
	return nil
}
