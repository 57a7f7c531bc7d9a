package tvtextviewer

// Event is an abstract navigation command. Frontends translate raw
// device input (keyboard, gamepad, mouse wheel) into these before the
// core ever sees it, keeping the state machine free of device-specific
// branching.
type Event int

const (
	ScrollUp Event = iota
	ScrollDown
	PageUp
	PageDown
	Home
	End
	Confirm
	Cancel
)

// String returns the event name, for diagnostics.
func (e Event) String() string {
	switch e {
	case ScrollUp:
		return "ScrollUp"
	case ScrollDown:
		return "ScrollDown"
	case PageUp:
		return "PageUp"
	case PageDown:
		return "PageDown"
	case Home:
		return "Home"
	case End:
		return "End"
	case Confirm:
		return "Confirm"
	case Cancel:
		return "Cancel"
	}
	return "Unknown"
}

// ExitKind discriminates how a session ended.
type ExitKind int

const (
	ExitNone ExitKind = iota
	ExitConfirm
	ExitCancel
)

// ExitDecision is the session outcome. It starts as the zero value
// (ExitNone) and is set to a terminal value exactly once; the host loop
// polls it each frame and shuts down as soon as Kind != ExitNone.
type ExitDecision struct {
	Kind ExitKind
	Code int
}

// navState is the controller's state machine position.
type navState int

const (
	stateViewing navState = iota
	stateExited
)

// navigationController applies one frame's drained events to a viewport
// and decides when the session ends. Scroll-family events mutate the
// viewport immediately in arrival order; the first Confirm or Cancel is
// terminal and discards the rest of that frame's events. Confirm is
// honored only when the session offers an explicit accept action.
type navigationController struct {
	state            navState
	confirmAvailable bool
	cancelCode       int
	confirmCode      int
	decision         ExitDecision
}

// apply processes a single event against vp and reports whether the
// viewport may have changed. Once exited, every event is ignored.
func (n *navigationController) apply(e Event, vp Viewport, total int) (Viewport, bool) {
	if n.state == stateExited {
		return vp, false
	}
	switch e {
	case ScrollUp:
		return vp.Scroll(-1, total), true
	case ScrollDown:
		return vp.Scroll(1, total), true
	case PageUp:
		return vp.PageScroll(-1, total), true
	case PageDown:
		return vp.PageScroll(1, total), true
	case Home:
		return vp.JumpHome(), true
	case End:
		return vp.JumpEnd(total), true
	case Confirm:
		if !n.confirmAvailable {
			return vp, false
		}
		n.state = stateExited
		n.decision = ExitDecision{Kind: ExitConfirm, Code: n.confirmCode}
	case Cancel:
		n.state = stateExited
		n.decision = ExitDecision{Kind: ExitCancel, Code: n.cancelCode}
	}
	return vp, false
}

func (n *navigationController) exited() bool {
	return n.state == stateExited
}
