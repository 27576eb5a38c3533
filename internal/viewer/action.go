package viewer

// Action is a keyboard command
type Action int

const (
	ActionNone Action = iota
	ActionPrevious
	ActionNext
	ActionRefresh
	ActionSlot1
	ActionSlot2
	ActionSlot3
	ActionSlot4
	ActionSlot5
	ActionSlot6
	ActionSlot7
	ActionSlot8
	ActionSlot9
	ActionSlot0
)

// SlotAction returns the jump action for a digit key. Digits 1-9 select the
// first nine files and 0 the tenth.
func SlotAction(digit int) Action {
	switch {
	case digit == 0:
		return ActionSlot0
	case digit >= 1 && digit <= 9:
		return ActionSlot1 + Action(digit-1)
	default:
		return ActionNone
	}
}

// SlotIndex returns the file index a slot action jumps to, or -1
func (a Action) SlotIndex() int {
	if a >= ActionSlot1 && a <= ActionSlot0 {
		return int(a - ActionSlot1)
	}
	return -1
}

// Handle runs a keyboard action
func (v *Viewer) Handle(a Action) {
	switch a {
	case ActionPrevious:
		v.Navigate(Previous)
	case ActionNext:
		v.Navigate(Next)
	case ActionRefresh:
		v.Refresh()
	default:
		if i := a.SlotIndex(); i >= 0 {
			v.JumpTo(i)
		}
	}
}
