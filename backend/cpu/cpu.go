// Copyright 2026 The Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu exposes the reference CPU interpreter for expression graphs.
//
//	interp := cpu.New()
//	result, err := interp.Eval(g, outputNode)
package cpu

import (
	"github.com/axon-ml/axon/internal/backend/cpu"
	"github.com/axon-ml/axon/internal/parallel"
)

// Interp materializes expression graphs on the host CPU.
type Interp = cpu.Interp

// Config controls kernel parallelism.
type Config = parallel.Config

// New creates an interpreter with default parallelism.
func New() *Interp {
	return cpu.New()
}

// NewWithConfig creates an interpreter with explicit parallelism settings.
func NewWithConfig(cfg Config) *Interp {
	return cpu.NewWithConfig(cfg)
}
