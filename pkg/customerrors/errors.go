// Package customerrors defines the sentinel errors shared by the pool
// implementations.
package customerrors

import (
	"errors"
)

var (
	// ErrZeroBlockSize is returned by pool constructors when the requested
	// block size is zero.
	ErrZeroBlockSize = errors.New("block size must be positive")

	// ErrZeroTotalSize is returned by pool constructors when the pool is
	// created with no capacity at all.
	ErrZeroTotalSize = errors.New("total size must be positive")

	// ErrPoolTooSmall is returned when the pool capacity cannot hold even a
	// single block of the configured size.
	ErrPoolTooSmall = errors.New("total size smaller than block size")

	// ErrEmptySizeMenu is returned when a variable pool is created with no
	// allowed block sizes.
	ErrEmptySizeMenu = errors.New("empty block size menu")

	ErrZeroMenuSize = errors.New("block size menu entries must be positive")
)
