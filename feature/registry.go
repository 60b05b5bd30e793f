package feature

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2019–2024 Tiago Tresoldi <tiago.tresoldi@lingfil.uu.se>

*/

import (
	"fmt"
	"sync"
)

// DefaultName is the name of the system built lazily from the embedded
// resource tables.
const DefaultName = "default"

// UnknownSystemError reports a registry lookup for a name that was
// never registered.
type UnknownSystemError struct {
	Name string
}

func (e *UnknownSystemError) Error() string {
	return fmt.Sprintf("unknown feature system %q", e.Name)
}

// The registry is the only mutable state of the engine. Writes happen
// under the mutex; steady-state reads take the read lock only.
var registry = struct {
	sync.RWMutex
	systems  map[string]*System
	fallback string
}{
	systems:  make(map[string]*System),
	fallback: DefaultName,
}

// Register adds (or replaces) a system under its name.
func Register(sys *System) {
	registry.Lock()
	defer registry.Unlock()
	registry.systems[sys.Name()] = sys
	tracer().Infof("registered feature system %q", sys.Name())
}

// Get returns the system registered under a name. The default system is
// constructed on first lookup.
func Get(name string) (*System, error) {
	registry.RLock()
	sys, ok := registry.systems[name]
	registry.RUnlock()
	if ok {
		return sys, nil
	}
	if name != DefaultName {
		return nil, &UnknownSystemError{Name: name}
	}
	registry.Lock()
	defer registry.Unlock()
	if sys, ok = registry.systems[name]; ok { // raced with another init
		return sys, nil
	}
	sys, err := New(DefaultName, nil)
	if err != nil {
		return nil, err
	}
	registry.systems[DefaultName] = sys
	return sys, nil
}

// Default returns the system currently set as default.
func Default() (*System, error) {
	registry.RLock()
	name := registry.fallback
	registry.RUnlock()
	return Get(name)
}

// SetDefault makes a registered name the default. Setting an unknown
// name (other than the lazily built default) is an error.
func SetDefault(name string) error {
	registry.RLock()
	_, ok := registry.systems[name]
	registry.RUnlock()
	if !ok && name != DefaultName {
		return &UnknownSystemError{Name: name}
	}
	registry.Lock()
	registry.fallback = name
	registry.Unlock()
	return nil
}
