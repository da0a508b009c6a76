package simulation

import (
	"strings"
)

// A Message is something an actor was told.
type Message struct {
	Actor string
	Text  string
	Error bool
}

// A Printer shows actor messages as they arrive.
type Printer func(msg Message)

// An Actor is a scripted player.
type Actor struct {
	name        string
	permissions []string
	sneaking    bool
	printer     Printer
	messages    []Message
}

// NewActor creates an actor that holds the given permission nodes. A node
// ending with ".*" grants everything below it and "*" grants everything.
func NewActor(name string, permissions []string, printer Printer) *Actor {
	return &Actor{
		name:        name,
		permissions: permissions,
		printer:     printer,
	}
}

// Name returns the name of the actor.
func (a *Actor) Name() string {
	return a.name
}

// HasPermission checks the node against the granted permissions.
func (a *Actor) HasPermission(node string) bool {
	node = strings.ToLower(node)

	for _, p := range a.permissions {
		p = strings.ToLower(p)

		switch {
		case p == "*", p == node:
			return true
		case strings.HasSuffix(p, ".*") &&
			strings.HasPrefix(node, strings.TrimSuffix(p, "*")):
			return true
		}
	}

	return false
}

// IsSneaking returns true while the actor sneaks.
func (a *Actor) IsSneaking() bool {
	return a.sneaking
}

// SetSneaking changes whether the actor sneaks.
func (a *Actor) SetSneaking(sneaking bool) {
	a.sneaking = sneaking
}

// Print tells the actor something.
func (a *Actor) Print(msg string) {
	a.tell(msg, false)
}

// PrintError tells the actor that something went wrong.
func (a *Actor) PrintError(msg string) {
	a.tell(msg, true)
}

func (a *Actor) tell(text string, isError bool) {
	msg := Message{Actor: a.name, Text: text, Error: isError}
	a.messages = append(a.messages, msg)

	if a.printer != nil {
		a.printer(msg)
	}
}

// Messages returns everything the actor was told.
func (a *Actor) Messages() []Message {
	return a.messages
}
