// Package hooking lets observers attach to the engine and the IC mechanic
// without those packages knowing about tracing, recording or monitoring.
package hooking

import (
	"log"
	"sync"
)

// A HookPos names a point where hooks are invoked. Positions are compared by
// pointer, so each one is declared once as a package variable.
type HookPos struct {
	Name string
}

// HookCtx describes one invocation.
type HookCtx struct {
	// Domain is the object invoking the hooks.
	Domain Hookable
	Pos    *HookPos

	// Item is the subject of the invocation, such as an event or an IC.
	Item any

	// Detail is optional extra information that depends on Pos.
	Detail any
}

// A Hookable accepts hooks.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// A Hook is called by a Hookable at each of its positions.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc adapts a function to Hook. Functions are not comparable, so a
// HookFunc is always used through a pointer.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f *HookFunc) Func(ctx HookCtx) {
	(*f)(ctx)
}

// NewHookFunc wraps f into a Hook.
func NewHookFunc(f func(ctx HookCtx)) Hook {
	hf := HookFunc(f)
	return &hf
}

// HookableBase implements Hookable. Embedding types call InvokeHook. Hooks
// may be added while hooks are being invoked on another goroutine.
type HookableBase struct {
	mu    sync.RWMutex
	hooks []Hook
}

// AcceptHook adds a hook. Adding the same hook twice panics.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, existing := range h.hooks {
		if existing == hook {
			log.Panicf("hook %T is already registered", hook)
		}
	}

	h.hooks = append(h.hooks, hook)
}

// NumHooks returns the number of hooks.
func (h *HookableBase) NumHooks() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.hooks)
}

// Hooks returns a copy of the hooks, in the order they were added.
func (h *HookableBase) Hooks() []Hook {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return append([]Hook(nil), h.hooks...)
}

// InvokeHook calls every hook with ctx, in the order they were added.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	h.mu.RLock()
	hooks := h.hooks
	h.mu.RUnlock()

	for _, hook := range hooks {
		hook.Func(ctx)
	}
}
