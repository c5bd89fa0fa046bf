package bioos

import "errors"

var (
	// ErrResourceExhausted indicates an organism could not be admitted
	// because biological memory (or the process table) is full. The failed
	// creation is rolled back; the kernel keeps running.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInvalidGenome indicates a genome contains a sequence outside the
	// nucleotide alphabet.
	ErrInvalidGenome = errors.New("invalid genome")
)
