package editor

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/net/html"
)

type EventName string

const (
	EventInput   EventName = "input"
	EventChange  EventName = "change"
	EventFocus   EventName = "focus"
	EventBlur    EventName = "blur"
	EventPaste   EventName = "paste"
	EventKeydown EventName = "keydown"
)

// Event is delivered to listeners. Every event carries the editor identity;
// the remaining fields depend on Name:
//   - input, change: Content
//   - paste: Original, Cleaned
//   - keydown: Key and the modifier flags
type Event struct {
	Name     EventName
	EditorID string
	Host     *html.Node
	Surface  *html.Node
	// Target is the element the listener was bound to: the host or the surface.
	Target *html.Node

	Content string

	Original string
	Cleaned  string

	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
}

type Listener func(Event)

// Subscription identifies one registered listener.
type Subscription struct {
	EditorID string
	id       uint64
}

type listener struct {
	id   uint64
	name EventName
	fn   Listener
}

// bus holds the listeners bound to an editor's host and surface.
type bus struct {
	next    uint64
	host    []listener
	surface []listener
}

func (b *bus) add(onSurface bool, name EventName, fn Listener) uint64 {
	b.next++
	l := listener{id: b.next, name: name, fn: fn}
	if onSurface {
		b.surface = append(b.surface, l)
	} else {
		b.host = append(b.host, l)
	}
	return l.id
}

func (b *bus) remove(id uint64) bool {
	for _, list := range []*[]listener{&b.host, &b.surface} {
		for i, l := range *list {
			if l.id == id {
				*list = append((*list)[:i:i], (*list)[i+1:]...)
				return true
			}
		}
	}
	return false
}

// emit delivers ev to host listeners, then to surface listeners.
func (b *bus) emit(ev Event) {
	host := append([]listener(nil), b.host...)
	surface := append([]listener(nil), b.surface...)
	target := ev.Target
	for _, l := range host {
		if l.name == ev.Name {
			ev.Target = ev.Host
			l.fn(ev)
		}
	}
	for _, l := range surface {
		if l.name == ev.Name {
			ev.Target = ev.Surface
			l.fn(ev)
		}
	}
	ev.Target = target
}

func (e *Editor) emit(ev Event) {
	ev.EditorID = e.id
	ev.Host = e.host
	ev.Surface = e.area
	e.bus.emit(ev)
}

func (e *Editor) emitContent(name EventName) {
	e.emit(Event{Name: name, Content: e.Value()})
}

func keyEvent(msg tea.KeyMsg) Event {
	s := msg.String()
	return Event{
		Name:  EventKeydown,
		Key:   s,
		Ctrl:  strings.Contains(s, "ctrl+"),
		Alt:   msg.Alt,
		Shift: strings.Contains(s, "shift+"),
	}
}
