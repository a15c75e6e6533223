package qlearn

// Action is a steering decision. The ordinals are part of the persisted
// table layout (column order) and of tie-breaking, so they must not change.
type Action uint8

const (
	Left  Action = 0
	Stay  Action = 1
	Right Action = 2
)

// ActionCount is the size of the action space.
const ActionCount = 3

// Actions returns every action in ordinal order.
func Actions() [ActionCount]Action {
	return [ActionCount]Action{Left, Stay, Right}
}

// Valid reports whether a is one of the three defined actions.
func (a Action) Valid() bool {
	return a <= Right
}

// Direction returns the column offset the action steers by.
func (a Action) Direction() int {
	switch a {
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

func (a Action) String() string {
	switch a {
	case Left:
		return "Left"
	case Stay:
		return "Stay"
	case Right:
		return "Right"
	default:
		return "Unknown"
	}
}

// Mover is anything the car can be steered on.
type Mover interface {
	Move(direction int) bool
}

// Collider reports whether the car has crashed.
type Collider interface {
	HasCollision() bool
}

// ApplyAction steers m according to a. Stay leaves it untouched.
func ApplyAction(m Mover, a Action) {
	switch a {
	case Left:
		m.Move(-1)
	case Right:
		m.Move(1)
	}
}

// Reward is the flat survival incentive: a large penalty on collision,
// otherwise one point per tick.
func Reward(c Collider) float64 {
	if c.HasCollision() {
		return CollisionReward
	}
	return SurvivalReward
}
