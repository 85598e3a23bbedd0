package control

// Node is an element of a host view tree.
type Node interface {
	Children() []Node
}

// Role selects which kind of control a Locator looks for.
type Role uint8

const (
	RoleAny Role = iota
	RoleField
	RoleArea
)

func (r Role) String() string {
	switch r {
	case RoleAny:
		return "any"
	case RoleField:
		return "field"
	case RoleArea:
		return "area"
	default:
		return "unknown"
	}
}

// Matches reports whether c exposes the capability r asks for.
func (r Role) Matches(c Control) bool {
	switch r {
	case RoleAny:
		_, field := c.(Field)
		_, area := c.(Area)
		return field || area
	case RoleField:
		_, ok := c.(Field)
		return ok
	case RoleArea:
		_, ok := c.(Area)
		return ok
	default:
		return false
	}
}

// Locator finds the live control for role inside tree. It reports false when
// the control is not realized yet.
type Locator interface {
	Locate(tree Node, role Role) (Control, bool)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(tree Node, role Role) (Control, bool)

func (f LocatorFunc) Locate(tree Node, role Role) (Control, bool) { return f(tree, role) }

// FirstMatch walks the tree depth-first, parents before children, and returns
// the first node that is a control matching the role.
var FirstMatch Locator = LocatorFunc(firstMatch)

func firstMatch(tree Node, role Role) (Control, bool) {
	if tree == nil {
		return nil, false
	}
	if c, ok := tree.(Control); ok && role.Matches(c) {
		return c, true
	}
	for _, child := range tree.Children() {
		if c, ok := firstMatch(child, role); ok {
			return c, true
		}
	}
	return nil, false
}

// Group is a Node holding other nodes.
type Group []Node

func (g Group) Children() []Node { return g }
