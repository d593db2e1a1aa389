// Package deltatest: the fixture record types.
package deltatest

import (
	"time"

	"github.com/Quaverflow/deepdelta/dirty"
	"github.com/Quaverflow/deepdelta/schema"
)

// Address is a leaf record; City opts into case-insensitive equality.
type Address struct {
	Street string
	City   string
}

// Customer nests an Address.
type Customer struct {
	Id      int64
	Name    string
	Address *Address
}

// Item is the element type of order lines; SKU doubles as the key member
// for unordered matching.
type Item struct {
	SKU string
	Qty int64
}

// Dog and Cat are the concrete payloads behind the polymorphic Animal
// member.
type Dog struct {
	Name string
}

// Cat carries one more member than Dog so a tag switch changes shape.
type Cat struct {
	Name  string
	Lives int64
}

// Node is the cyclic fixture: Next may point anywhere, including back.
type Node struct {
	Name string
	Next *Node
}

// Order is the main fixture; its members cover every declared kind.
type Order struct {
	Id         int64
	Notes      string
	Created    time.Time
	Customer   *Customer
	Items      []*Item             // ordered, granular sequence
	Tags       []string            // order-insensitive sequence
	Attributes map[string]string   // granular dictionary
	Labels     map[string]struct{} // set
	Flags      uint64
	Grid       [2][2]int64 // multi-dimensional array
	Animal     schema.Tagged
	Audit      []string // delta-shallow: replaced wholesale on apply
	Secret     string   // compare-skip
	Lines      []*Item  // order-insensitive, keyed by SKU
}

// TrackedOrder is the dirty-tracked fixture. Its setters mark member bits
// the way generated setters do; mutate it only through them.
type TrackedOrder struct {
	dirty.Tracker

	id    int64
	notes string
	items []*Item
	attrs map[string]string
}

// NewTrackedOrder returns a tracked instance with a zeroed dirty-word.
func NewTrackedOrder() *TrackedOrder {
	return &TrackedOrder{
		Tracker: dirty.NewTracker(4),
		attrs:   make(map[string]string),
	}
}

// Id reads member 0.
func (t *TrackedOrder) Id() int64 { return t.id }

// SetId writes member 0 and marks its bit.
func (t *TrackedOrder) SetId(v int64) {
	t.id = v
	t.Mark(0)
}

// Notes reads member 1.
func (t *TrackedOrder) Notes() string { return t.notes }

// SetNotes writes member 1 and marks its bit.
func (t *TrackedOrder) SetNotes(v string) {
	t.notes = v
	t.Mark(1)
}

// Items reads member 2.
func (t *TrackedOrder) Items() []*Item { return t.items }

// SetItems rebinds member 2 and marks its bit.
func (t *TrackedOrder) SetItems(v []*Item) {
	t.items = v
	t.Mark(2)
}

// Attrs reads member 3.
func (t *TrackedOrder) Attrs() map[string]string { return t.attrs }

// PutAttr stores one attribute and marks member 3.
func (t *TrackedOrder) PutAttr(k, v string) {
	t.attrs[k] = v
	t.Mark(3)
}
