// Package toolbar holds the tool registry and renders toolbar markup.
//
// The registry is a typed tree: a Tool is either a Leaf or a Composite with
// child tools. It is immutable once built and may be shared by any number of
// editors.
package toolbar

// Tool is one registry entry.
type Tool interface {
	ToolID() string
	Label() string
	// Trigger is the markup of the control that starts the tool.
	Trigger() string
	isTool()
}

// Leaf is a tool without children.
type Leaf struct {
	ID     string
	Name   string
	Markup string
}

func (l Leaf) ToolID() string  { return l.ID }
func (l Leaf) Label() string   { return l.Name }
func (l Leaf) Trigger() string { return l.Markup }
func (Leaf) isTool()           {}

// Composite is a tool whose control opens a menu of child tools.
type Composite struct {
	Leaf
	Children []Tool
}

// Child returns the direct child with the given id.
func (c Composite) Child(id string) (Tool, bool) {
	for _, t := range c.Children {
		if t.ToolID() == id {
			return t, true
		}
	}
	return nil, false
}

// Registry is an ordered set of top-level tools.
type Registry struct {
	tools []Tool
}

func NewRegistry(tools ...Tool) *Registry {
	return &Registry{tools: append([]Tool(nil), tools...)}
}

// Tools returns the top-level tools in registration order.
func (r *Registry) Tools() []Tool {
	return append([]Tool(nil), r.tools...)
}

// Top finds a top-level tool.
func (r *Registry) Top(id string) (Tool, bool) {
	id = Canonical(id)
	for _, t := range r.tools {
		if t.ToolID() == id {
			return t, true
		}
	}
	return nil, false
}

// Lookup finds a tool anywhere in the tree, depth first.
func (r *Registry) Lookup(id string) (Tool, bool) {
	return lookup(r.tools, Canonical(id))
}

func lookup(tools []Tool, id string) (Tool, bool) {
	for _, t := range tools {
		if t.ToolID() == id {
			return t, true
		}
		if c, ok := t.(Composite); ok {
			if found, ok := lookup(c.Children, id); ok {
				return found, true
			}
		}
	}
	return nil, false
}

var aliases = map[string]string{
	"indent":  "indentIncrease",
	"outdent": "indentDecrease",
}

// Canonical maps accepted aliases onto registry identifiers.
func Canonical(id string) string {
	if a, ok := aliases[id]; ok {
		return a
	}
	return id
}
