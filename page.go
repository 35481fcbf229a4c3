package sdui

import (
	"github.com/google/uuid"
)

// Item wraps a content node with an ephemeral identity.
//
// The identity is assigned fresh when an item is constructed or decoded
// and exists only so that list renderers have a stable key. It is never
// part of the wire format: decoding does not read it, encoding does not
// write it.
type Item struct {
	ID   uuid.UUID
	Node Node
}

// NewItem wraps the given node with a fresh identity.
func NewItem(n Node) Item {
	return Item{ID: uuid.New(), Node: n}
}

// Page is a titled, ordered sequence of content items.
// It is the unit returned by a content fetch and the unit embedded
// inside a NavigationLink destination.
//
// A page is immutable once decoded.
type Page struct {
	Title   string `json:"title"`
	Content []Item `json:"content"`
}

// NewPage creates a page from the given nodes, wrapping each in an Item.
func NewPage(title string, nodes ...Node) *Page {
	items := make([]Item, len(nodes))
	for i, n := range nodes {
		items[i] = NewItem(n)
	}
	return &Page{Title: title, Content: items}
}

// Walk visits every item in document order, descending into stack
// children, navigation link labels and embedded destination pages.
// The walk stops at the first error from the visit function and
// returns it.
func (p *Page) Walk(visit func(Item) error) error {
	return walkItems(p.Content, visit)
}

func walkItems(items []Item, visit func(Item) error) error {
	for _, it := range items {
		err := visit(it)
		if err != nil {
			return err
		}

		switch n := it.Node.(type) {
		case *Stack:
			err = walkItems(n.Children, visit)
		case *NavigationLink:
			err = walkItems(n.Label, visit)
			if err == nil && n.Destination != nil {
				err = n.Destination.Walk(visit)
			}
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// FormKeys collects the form binding keys of all interactive nodes on
// this page, in document order. Keys are not de-duplicated; a repeated
// key means two nodes share (and overwrite) the same form value.
func (p *Page) FormKeys() []string {
	keys := make([]string, 0)
	p.Walk(func(it Item) error {
		switch n := it.Node.(type) {
		case *TextInput:
			keys = append(keys, n.Key)
		case *MultipleChoice:
			keys = append(keys, n.Key)
		case *VoiceNote:
			keys = append(keys, n.Key)
		case *PhotoUpload:
			keys = append(keys, n.Key)
		case *MapLocation:
			keys = append(keys, n.Key)
		}
		return nil
	})
	return keys
}

// Endpoint returns the submission endpoint of the first submit button
// on the page, or "" if the page has none.
func (p *Page) Endpoint() string {
	var ep string
	p.Walk(func(it Item) error {
		if b, ok := it.Node.(*SubmitButton); ok && ep == "" {
			ep = b.Endpoint
		}
		return nil
	})
	return ep
}
