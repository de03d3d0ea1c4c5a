package runtime

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnbound occurs when a name is read or assigned without a binding.
	ErrUnbound = errors.New("unbound identifier")
	// ErrRedefinition occurs when a frame defines the same name twice.
	ErrRedefinition = errors.New("identifier already defined in this scope")
)

// Environment is one frame of lexical bindings with a link to its parent.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new frame, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Define binds name in this frame. A name already bound in this frame is
// an error; shadowing a binding of an outer frame is allowed.
func (e *Environment) Define(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		return fmt.Errorf("%w: '%s'", ErrRedefinition, name)
	}
	e.values[name] = value
	return nil
}

// Assign updates an existing binding in the first frame where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w: '%s'", ErrUnbound, name)
}

// Get retrieves a binding, searching outward through the frame chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnbound, name)
}

// Has reports whether name is bound in this frame only.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Keys returns this frame's names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stack records the frames pushed on top of the global frame so that their
// LIFO discipline can be checked and every frame is accounted for.
type Stack struct {
	global *Environment
	frames []*Environment
}

// NewStack starts an empty stack above global.
func NewStack(global *Environment) *Stack {
	return &Stack{global: global}
}

// Global returns the bottom frame.
func (s *Stack) Global() *Environment {
	return s.global
}

// Push opens a frame whose lexical parent is parent (the global frame when nil).
func (s *Stack) Push(parent *Environment) *Environment {
	if parent == nil {
		parent = s.global
	}
	frame := NewEnvironment(parent)
	s.frames = append(s.frames, frame)
	return frame
}

// Pop closes frame, which must be the most recently pushed one.
func (s *Stack) Pop(frame *Environment) error {
	if len(s.frames) == 0 {
		return fmt.Errorf("frame stack underflow")
	}
	top := s.frames[len(s.frames)-1]
	if top != frame {
		return fmt.Errorf("frame popped out of order: %d frames active", len(s.frames))
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Depth returns the number of frames pushed and not yet popped.
func (s *Stack) Depth() int {
	return len(s.frames)
}
