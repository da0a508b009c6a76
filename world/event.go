package world

// SignChangeEvent is fired when an actor finishes editing a sign and before
// the host writes the text. Listeners may rewrite Lines. A cancelled event
// leaves the sign as it was.
type SignChangeEvent struct {
	Block Location
	Actor Actor
	Lines Lines

	cancelled bool
}

// Cancel stops the host from applying the text.
func (e *SignChangeEvent) Cancel() {
	e.cancelled = true
}

// Cancelled returns true if a listener cancelled the event.
func (e *SignChangeEvent) Cancelled() bool {
	return e.cancelled
}

// RedstoneEvent is fired on the blocks next to Source when the redstone level
// at Source changes.
type RedstoneEvent struct {
	Block  Location
	Source Location
	Old    int
	New    int
}

// IsOn returns true if the source is powered after the change.
func (e RedstoneEvent) IsOn() bool {
	return e.New > 0
}

// Changed returns true if the level actually changed.
func (e RedstoneEvent) Changed() bool {
	return e.Old != e.New
}

// BreakEvent is fired before a block is destroyed.
type BreakEvent struct {
	Block Location
	Actor Actor

	cancelled bool
}

// Cancel keeps the block in place.
func (e *BreakEvent) Cancel() {
	e.cancelled = true
}

// Cancelled returns true if a listener cancelled the event.
func (e *BreakEvent) Cancelled() bool {
	return e.cancelled
}

// ClickAction tells which button was used.
type ClickAction int

// Click actions.
const (
	RightClick ClickAction = iota
	LeftClick
)

func (a ClickAction) String() string {
	if a == LeftClick {
		return "left"
	}

	return "right"
}

// ClickEvent is fired when an actor clicks a block.
type ClickEvent struct {
	Block  Location
	Actor  Actor
	Action ClickAction

	cancelled bool
}

// Cancel suppresses the host's default interaction.
func (e *ClickEvent) Cancel() {
	e.cancelled = true
}

// Cancelled returns true if a listener cancelled the event.
func (e *ClickEvent) Cancelled() bool {
	return e.cancelled
}

// PipePutEvent is fired when a pipe pushes items into the block. Listeners
// remove the items they accept from Items; what is left goes back into the
// pipe.
type PipePutEvent struct {
	Block  Location
	Source Location
	Items  []Material
}
