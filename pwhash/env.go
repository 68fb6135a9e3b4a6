// pwhash-go: Argon2 password hashing and verification
// Copyright 2025 Dark Bio AG. All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pwhash

import "runtime"

// execEnv reports the identifying signals of the execution environment.
// It is a variable, and SupportsParallelism reads it on every call, so
// tests can substitute the signals without re-initializing anything.
var execEnv = func() (goos, goarch string) {
	return runtime.GOOS, runtime.GOARCH
}

// SupportsParallelism reports whether the current execution environment can
// run more than one KDF lane at a time. WebAssembly targets (js/wasm and
// wasip1) execute single-threaded, so parameter sets with a parallelism
// other than 1 are rejected there. Pure query, no side effects.
func SupportsParallelism() bool {
	goos, goarch := execEnv()
	return goarch != "wasm" && goos != "js" && goos != "wasip1"
}
