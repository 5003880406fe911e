// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package herr defines the sentinel error taxonomy for helsing. Every
// class is fatal: the CLI prints the wrapped message to stderr and
// exits nonzero, there is no recovery path.
package herr

import "errors"

var (
	// ErrInputParse indicates MIN/MAX were not decimal or overflowed
	// the configured product width.
	ErrInputParse = errors.New("input parse error")

	// ErrInputRange indicates MIN > MAX.
	ErrInputRange = errors.New("input range error")

	// ErrCapacityExceeded indicates MAX exceeds the safety limit of the
	// selected fingerprint encoding (20 digits wide, 10 digits narrow).
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrAllocation indicates an out-of-memory condition.
	ErrAllocation = errors.New("allocation failure")

	// ErrIO indicates a write failure on stdout or the checkpoint file.
	ErrIO = errors.New("io error")
)
