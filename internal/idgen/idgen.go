package idgen

import "github.com/google/uuid"

// NewFunc produces a new globally unique identifier. Override in tests for
// stable identifiers.
var NewFunc = func() string { return uuid.New().String() }

// New is a thin wrapper around NewFunc.
func New() string { return NewFunc() }
