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

// Package config collects every CLI-derived setting into one value
// passed explicitly through the driver, worker pool, and output
// stages — no package-level mutable configuration state (§9).
package config

import (
	"fmt"

	"github.com/jaskij/helsing/internal/herr"
	"github.com/jaskij/helsing/internal/output"
)

// wideCapacityDigits/narrowCapacityDigits are the maximum product
// decimal length each fingerprint encoding is sound for (§7).
const (
	wideCapacityDigits   = 20
	narrowCapacityDigits = 10
)

// Config is the fully resolved, validated set of search parameters.
type Config struct {
	Min, Max       uint64
	Threads        int
	Mode           output.Mode
	MinFangPairs   uint8
	TileSize       uint64
	CacheEnabled   bool
	Wide           bool
	CheckpointPath string
	Checksum       bool
	Progress       bool
}

// Validate enforces §7's InputRange and CapacityExceeded checks.
func (c Config) Validate() error {
	if c.Min > c.Max {
		return fmt.Errorf("%w: MIN (%d) > MAX (%d)", herr.ErrInputRange, c.Min, c.Max)
	}
	maxDigits := narrowCapacityDigits
	if c.Wide {
		maxDigits = wideCapacityDigits
	}
	if digits(c.Max) > maxDigits {
		encoding := "narrow"
		if c.Wide {
			encoding = "wide"
		}
		return fmt.Errorf("%w: MAX has more than %d digits, unsound for the %s fingerprint encoding", herr.ErrCapacityExceeded, maxDigits, encoding)
	}
	return nil
}

func digits(n uint64) int {
	if n == 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}
