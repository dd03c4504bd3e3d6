// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "sync"

// optimizerCtor constructs a fresh ContractionSeqOptimizer instance.
type optimizerCtor func() ContractionSeqOptimizer

// optimizerFactory is a process-wide registry mapping an optimizer
// subtype name to a constructor. Registration and lookup are thread-safe.
type optimizerFactory struct {
	mu    sync.RWMutex
	ctors map[string]optimizerCtor
}

var (
	factoryOnce sync.Once
	factory     *optimizerFactory
)

// defaultFactory lazily initializes the process-wide registry and seeds it
// with the four built-in strategies.
func defaultFactory() *optimizerFactory {
	factoryOnce.Do(func() {
		factory = &optimizerFactory{ctors: make(map[string]optimizerCtor)}
		factory.register("dummy", func() ContractionSeqOptimizer { return NewDummyOptimizer() })
		factory.register("heuro", func() ContractionSeqOptimizer { return NewHeuroOptimizer(1) })
		factory.register("greed", func() ContractionSeqOptimizer { return NewGreedyOptimizer() })
		factory.register("metis", func() ContractionSeqOptimizer { return NewMetisOptimizer() })
	})
	return factory
}

func (f *optimizerFactory) register(name string, ctor optimizerCtor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctors[name] = ctor
}

func (f *optimizerFactory) create(name string) (ContractionSeqOptimizer, error) {
	f.mu.RLock()
	ctor, ok := f.ctors[name]
	f.mu.RUnlock()
	if !ok {
		return nil, newInvariantViolation("no contraction sequence optimizer registered under name %q", name)
	}
	return ctor(), nil
}

// RegisterOptimizer adds (or replaces) an entry in the process-wide
// optimizer registry. Intended for callers extending the factory with a
// custom strategy beyond the four built-ins.
func RegisterOptimizer(name string, ctor func() ContractionSeqOptimizer) {
	defaultFactory().register(name, ctor)
}

// CreateOptimizer looks up name in the process-wide registry and returns a
// fresh optimizer instance, or an *InvariantViolationError if name is
// unregistered.
func CreateOptimizer(name string) (ContractionSeqOptimizer, error) {
	return defaultFactory().create(name)
}
