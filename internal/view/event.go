package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoSuchNode is returned when a path does not address a node.
	ErrNoSuchNode = errors.New("no such node")
	// ErrInvalidPath is returned by ParsePath for malformed input.
	ErrInvalidPath = errors.New("invalid node path")
)

// EventKind names an interaction delivered back from the rendering layer.
type EventKind string

// Click is the only interaction the storefront delivers.
const Click EventKind = "click"

// Event is handed to every handler on the propagation chain.
type Event struct {
	Kind   EventKind
	Target Path

	stopped bool
}

// StopPropagation keeps the event from reaching any further ancestor.
func (e *Event) StopPropagation() { e.stopped = true }

// Stopped reports whether a handler stopped propagation.
func (e *Event) Stopped() bool { return e.stopped }

// Handler reacts to an event on an element.
type Handler func(*Event)

// Callback is a zero-argument notification owned by the caller of a
// component. A nil Callback is valid and does nothing.
type Callback func()

// Emit invokes the callback if set.
func (c Callback) Emit() {
	if c != nil {
		c()
	}
}

// Msg is the unit message a component may be sent.
type Msg struct{}

// Path addresses a node by child indices from the root. The empty path is
// the root itself.
type Path []int

// Child returns a new path one level deeper.
func (p Path) Child(i int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = i
	return out
}

// String encodes the path as dot-separated indices.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// ParsePath decodes the output of Path.String.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	p := make(Path, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		p[i] = v
	}
	return p, nil
}

// Find resolves path against root.
func Find(root Node, p Path) (Node, error) {
	chain, target, err := resolve(root, p)
	if err != nil {
		return nil, err
	}
	if target != nil {
		return target, nil
	}
	return chain[len(chain)-1], nil
}

// Ancestors returns the elements from root down to the node at p. If p
// addresses a text node, the chain ends at its parent element.
func Ancestors(root Node, p Path) ([]*Element, error) {
	chain, _, err := resolve(root, p)
	return chain, err
}

func resolve(root Node, p Path) ([]*Element, Node, error) {
	cur := root
	var chain []*Element
	for depth := 0; ; depth++ {
		switch n := cur.(type) {
		case *Element:
			if n == nil {
				return nil, nil, fmt.Errorf("%w: %s", ErrNoSuchNode, p)
			}
			chain = append(chain, n)
			if depth == len(p) {
				return chain, nil, nil
			}
			i := p[depth]
			if i < 0 || i >= len(n.Children) {
				return nil, nil, fmt.Errorf("%w: %s", ErrNoSuchNode, p)
			}
			cur = n.Children[i]
		case Text:
			if depth != len(p) || len(chain) == 0 {
				return nil, nil, fmt.Errorf("%w: %s", ErrNoSuchNode, p)
			}
			return chain, n, nil
		default:
			return nil, nil, fmt.Errorf("%w: %s", ErrNoSuchNode, p)
		}
	}
}

// Dispatch delivers an event to the node at p and bubbles it up through its
// ancestors until a handler stops it. It reports whether any handler ran.
func Dispatch(root Node, p Path, kind EventKind) (bool, error) {
	chain, err := Ancestors(root, p)
	if err != nil {
		return false, err
	}
	ev := &Event{Kind: kind, Target: p}
	handled := false
	for i := len(chain) - 1; i >= 0; i-- {
		h, ok := chain[i].Handlers[kind]
		if !ok || h == nil {
			continue
		}
		h(ev)
		handled = true
		if ev.stopped {
			break
		}
	}
	return handled, nil
}
