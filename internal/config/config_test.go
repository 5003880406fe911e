// Copyright 2025 go-highway Authors. SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"testing"

	"github.com/jaskij/helsing/internal/herr"
)

func TestValidateAcceptsOrdinaryRange(t *testing.T) {
	c := Config{Min: 1000, Max: 9999, Wide: true}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	c := Config{Min: 9999, Max: 1000, Wide: true}
	err := c.Validate()
	if !errors.Is(err, herr.ErrInputRange) {
		t.Errorf("Validate() = %v, want %v", err, herr.ErrInputRange)
	}
}

func TestValidateRejectsOverCapacityNarrow(t *testing.T) {
	c := Config{Min: 0, Max: 12345678901, Wide: false}
	err := c.Validate()
	if !errors.Is(err, herr.ErrCapacityExceeded) {
		t.Errorf("Validate() = %v, want %v", err, herr.ErrCapacityExceeded)
	}
}

func TestValidateAcceptsWideUpToTwentyDigits(t *testing.T) {
	c := Config{Min: 0, Max: 12345678901234567890, Wide: true}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil (20 digits fits the wide encoding)", err)
	}
}

func TestDigits(t *testing.T) {
	cases := map[uint64]int{
		0:          1,
		9:         1,
		10:        2,
		999:       3,
		1000:      4,
		123456789: 9,
	}
	for n, want := range cases {
		if got := digits(n); got != want {
			t.Errorf("digits(%d) = %d, want %d", n, got, want)
		}
	}
}
