// Package deltatest: descriptors and hand-written bindings for the fixture
// types, assembled into a fresh registry per World so tests never share
// registration state.
package deltatest

import (
	"sort"
	"time"

	"golang.org/x/text/language"

	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/schema"
)

// World is one isolated fixture universe: a registry plus the warmed-up
// schemas tests address directly.
type World struct {
	Reg *schema.Registry

	Address  *schema.Schema
	Customer *schema.Schema
	Item     *schema.Schema
	Dog      *schema.Schema
	Cat      *schema.Schema
	Node     *schema.Schema
	Order    *schema.Schema
	Tracked  *schema.Schema
}

// NewWorld registers every fixture type into a fresh registry and warms it
// up. Panics on registration errors: a broken fixture is a broken test
// suite, not a runtime condition.
func NewWorld() *World {
	reg := schema.NewRegistry()
	if err := reg.RegisterEquality("fold-invariant", core.CaseInsensitive(language.Und)); err != nil {
		panic(err)
	}

	w := &World{Reg: reg}
	w.Address = reg.MustRegister(addressDescriptor(), addressBinding())
	w.Customer = reg.MustRegister(customerDescriptor(), customerBinding())
	w.Item = reg.MustRegister(itemDescriptor(), itemBinding())
	w.Dog = reg.MustRegister(dogDescriptor(), dogBinding())
	w.Cat = reg.MustRegister(catDescriptor(), catBinding())
	w.Node = reg.MustRegister(nodeDescriptor(), nodeBinding())
	w.Order = reg.MustRegister(orderDescriptor(), orderBinding())
	w.Tracked = reg.MustRegister(trackedDescriptor(), trackedBinding())

	if err := reg.WarmUp("Order"); err != nil {
		panic(err)
	}

	return w
}

// sortAnyStrings orders a collected []any of string keys.
func sortAnyStrings(keys []any) {
	sort.Slice(keys, func(i, j int) bool { return keys[i].(string) < keys[j].(string) })
}

// strSeqOps is the vtable for []string sequence members.
func strSeqOps() *schema.SeqOps {
	return &schema.SeqOps{
		Len:   func(c any) int { return len(c.([]string)) },
		At:    func(c any, i int) any { return c.([]string)[i] },
		SetAt: func(c any, i int, v any) { c.([]string)[i] = v.(string) },
		Insert: func(c any, i int, v any) any {
			s := append(c.([]string), "")
			copy(s[i+1:], s[i:])
			s[i] = v.(string)

			return s
		},
		Remove: func(c any, i int) any {
			s := c.([]string)

			return append(s[:i], s[i+1:]...)
		},
		New:   func(n int) any { return make([]string, 0, n) },
		IsNil: func(c any) bool { return c == nil || c.([]string) == nil },
	}
}

// itemSeqOps is the vtable for []*Item sequence members.
func itemSeqOps() *schema.SeqOps {
	return &schema.SeqOps{
		Len: func(c any) int { return len(c.([]*Item)) },
		At: func(c any, i int) any {
			if it := c.([]*Item)[i]; it != nil {
				return it
			}

			return nil
		},
		SetAt: func(c any, i int, v any) {
			s := c.([]*Item)
			if v == nil {
				s[i] = nil
				return
			}
			s[i] = v.(*Item)
		},
		Insert: func(c any, i int, v any) any {
			s := append(c.([]*Item), nil)
			copy(s[i+1:], s[i:])
			if v == nil {
				s[i] = nil
			} else {
				s[i] = v.(*Item)
			}

			return s
		},
		Remove: func(c any, i int) any {
			s := c.([]*Item)

			return append(s[:i], s[i+1:]...)
		},
		New:   func(n int) any { return make([]*Item, 0, n) },
		IsNil: func(c any) bool { return c == nil || c.([]*Item) == nil },
	}
}

// strMapOps is the vtable for map[string]string dictionary members.
func strMapOps() *schema.MapOps {
	return &schema.MapOps{
		Len: func(c any) int { return len(c.(map[string]string)) },
		Range: func(c any, fn func(k, v any) bool) {
			for k, v := range c.(map[string]string) {
				if !fn(k, v) {
					return
				}
			}
		},
		Get: func(c any, k any) (any, bool) {
			v, ok := c.(map[string]string)[k.(string)]

			return v, ok
		},
		Set:      func(c any, k, v any) { c.(map[string]string)[k.(string)] = v.(string) },
		Del:      func(c any, k any) { delete(c.(map[string]string), k.(string)) },
		New:      func() any { return make(map[string]string) },
		IsNil:    func(c any) bool { return c == nil || c.(map[string]string) == nil },
		SortKeys: sortAnyStrings,
	}
}

// strSetOps is the vtable for map[string]struct{} set members.
func strSetOps() *schema.MapOps {
	return &schema.MapOps{
		Len: func(c any) int { return len(c.(map[string]struct{})) },
		Range: func(c any, fn func(k, v any) bool) {
			for k := range c.(map[string]struct{}) {
				if !fn(k, struct{}{}) {
					return
				}
			}
		},
		Get: func(c any, k any) (any, bool) {
			_, ok := c.(map[string]struct{})[k.(string)]

			return struct{}{}, ok
		},
		Set:      func(c any, k, _ any) { c.(map[string]struct{})[k.(string)] = struct{}{} },
		Del:      func(c any, k any) { delete(c.(map[string]struct{}), k.(string)) },
		New:      func() any { return make(map[string]struct{}) },
		IsNil:    func(c any) bool { return c == nil || c.(map[string]struct{}) == nil },
		SortKeys: sortAnyStrings,
	}
}

// gridArrOps is the vtable for the *[2][2]int64 array member, row-major.
func gridArrOps() *schema.ArrOps {
	return &schema.ArrOps{
		Dims: func(any) []int { return []int{2, 2} },
		Len:  func(any) int { return 4 },
		At: func(c any, i int) any {
			g := c.(*[2][2]int64)

			return g[i/2][i%2]
		},
		SetAt: func(c any, i int, v any) {
			g := c.(*[2][2]int64)
			g[i/2][i%2] = v.(int64)
		},
		New:   func() any { return &[2][2]int64{} },
		IsNil: func(c any) bool { return c == nil || c.(*[2][2]int64) == nil },
	}
}

func addressDescriptor() schema.TypeDescriptor {
	return schema.TypeDescriptor{
		Name: "Address",
		Members: []schema.MemberDescriptor{
			{Name: "Street", Kind: schema.KindString},
			{Name: "City", Kind: schema.KindString, EqualityRef: "fold-invariant"},
		},
	}
}

func addressBinding() schema.Binding {
	return schema.Binding{
		New:   func() any { return &Address{} },
		IsNil: func(rec any) bool { a, ok := rec.(*Address); return !ok || a == nil },
		Members: map[string]schema.MemberBinding{
			"Street": {
				Get: func(rec any) any { return rec.(*Address).Street },
				Set: func(rec, v any) { rec.(*Address).Street = v.(string) },
			},
			"City": {
				Get: func(rec any) any { return rec.(*Address).City },
				Set: func(rec, v any) { rec.(*Address).City = v.(string) },
			},
		},
	}
}

func customerDescriptor() schema.TypeDescriptor {
	return schema.TypeDescriptor{
		Name: "Customer",
		Members: []schema.MemberDescriptor{
			{Name: "Id", Kind: schema.KindInt},
			{Name: "Name", Kind: schema.KindString},
			{Name: "Address", Kind: schema.KindStruct, StructRef: "Address"},
		},
	}
}

func customerBinding() schema.Binding {
	return schema.Binding{
		New:   func() any { return &Customer{} },
		IsNil: func(rec any) bool { c, ok := rec.(*Customer); return !ok || c == nil },
		Members: map[string]schema.MemberBinding{
			"Id": {
				Get: func(rec any) any { return rec.(*Customer).Id },
				Set: func(rec, v any) { rec.(*Customer).Id = v.(int64) },
			},
			"Name": {
				Get: func(rec any) any { return rec.(*Customer).Name },
				Set: func(rec, v any) { rec.(*Customer).Name = v.(string) },
			},
			"Address": {
				Get: func(rec any) any {
					if a := rec.(*Customer).Address; a != nil {
						return a
					}

					return nil
				},
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Customer).Address = nil
						return
					}
					rec.(*Customer).Address = v.(*Address)
				},
			},
		},
	}
}

func itemDescriptor() schema.TypeDescriptor {
	return schema.TypeDescriptor{
		Name: "Item",
		Members: []schema.MemberDescriptor{
			{Name: "SKU", Kind: schema.KindString},
			{Name: "Qty", Kind: schema.KindInt},
		},
	}
}

func itemBinding() schema.Binding {
	return schema.Binding{
		New:   func() any { return &Item{} },
		IsNil: func(rec any) bool { it, ok := rec.(*Item); return !ok || it == nil },
		Members: map[string]schema.MemberBinding{
			"SKU": {
				Get: func(rec any) any { return rec.(*Item).SKU },
				Set: func(rec, v any) { rec.(*Item).SKU = v.(string) },
			},
			"Qty": {
				Get: func(rec any) any { return rec.(*Item).Qty },
				Set: func(rec, v any) { rec.(*Item).Qty = v.(int64) },
			},
		},
	}
}

func dogDescriptor() schema.TypeDescriptor {
	return schema.TypeDescriptor{
		Name:    "Dog",
		Members: []schema.MemberDescriptor{{Name: "Name", Kind: schema.KindString}},
	}
}

func dogBinding() schema.Binding {
	return schema.Binding{
		New:   func() any { return &Dog{} },
		IsNil: func(rec any) bool { d, ok := rec.(*Dog); return !ok || d == nil },
		Members: map[string]schema.MemberBinding{
			"Name": {
				Get: func(rec any) any { return rec.(*Dog).Name },
				Set: func(rec, v any) { rec.(*Dog).Name = v.(string) },
			},
		},
	}
}

func catDescriptor() schema.TypeDescriptor {
	return schema.TypeDescriptor{
		Name: "Cat",
		Members: []schema.MemberDescriptor{
			{Name: "Name", Kind: schema.KindString},
			{Name: "Lives", Kind: schema.KindInt},
		},
	}
}

func catBinding() schema.Binding {
	return schema.Binding{
		New:   func() any { return &Cat{} },
		IsNil: func(rec any) bool { c, ok := rec.(*Cat); return !ok || c == nil },
		Members: map[string]schema.MemberBinding{
			"Name": {
				Get: func(rec any) any { return rec.(*Cat).Name },
				Set: func(rec, v any) { rec.(*Cat).Name = v.(string) },
			},
			"Lives": {
				Get: func(rec any) any { return rec.(*Cat).Lives },
				Set: func(rec, v any) { rec.(*Cat).Lives = v.(int64) },
			},
		},
	}
}

func nodeDescriptor() schema.TypeDescriptor {
	return schema.TypeDescriptor{
		Name:          "Node",
		CycleTracking: true,
		Members: []schema.MemberDescriptor{
			{Name: "Name", Kind: schema.KindString},
			{Name: "Next", Kind: schema.KindStruct, StructRef: "Node"},
		},
	}
}

func nodeBinding() schema.Binding {
	return schema.Binding{
		New:   func() any { return &Node{} },
		IsNil: func(rec any) bool { n, ok := rec.(*Node); return !ok || n == nil },
		Members: map[string]schema.MemberBinding{
			"Name": {
				Get: func(rec any) any { return rec.(*Node).Name },
				Set: func(rec, v any) { rec.(*Node).Name = v.(string) },
			},
			"Next": {
				Get: func(rec any) any {
					if n := rec.(*Node).Next; n != nil {
						return n
					}

					return nil
				},
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Node).Next = nil
						return
					}
					rec.(*Node).Next = v.(*Node)
				},
			},
		},
	}
}

func orderDescriptor() schema.TypeDescriptor {
	return schema.TypeDescriptor{
		Name: "Order",
		Members: []schema.MemberDescriptor{
			{Name: "Id", Kind: schema.KindInt},
			{Name: "Notes", Kind: schema.KindString},
			{Name: "Created", Kind: schema.KindTime},
			{Name: "Customer", Kind: schema.KindStruct, StructRef: "Customer"},
			{Name: "Items", Kind: schema.KindSeq, ElemKind: schema.KindStruct, ElemRef: "Item"},
			{Name: "Tags", Kind: schema.KindSeq, ElemKind: schema.KindString, Order: schema.OrderInsensitive},
			{Name: "Attributes", Kind: schema.KindMap, KeyKind: schema.KindString, ValueKind: schema.KindString},
			{Name: "Labels", Kind: schema.KindSet, ElemKind: schema.KindString},
			{Name: "Flags", Kind: schema.KindFlags},
			{Name: "Grid", Kind: schema.KindArray, ElemKind: schema.KindInt},
			{Name: "Animal", Kind: schema.KindAny},
			{Name: "Audit", Kind: schema.KindSeq, ElemKind: schema.KindString, DeltaShallow: true},
			{Name: "Secret", Kind: schema.KindString, Compare: schema.CompareSkip},
			{Name: "Lines", Kind: schema.KindSeq, ElemKind: schema.KindStruct, ElemRef: "Item",
				Order: schema.OrderInsensitive, KeyMembers: []string{"SKU"}},
		},
	}
}

func orderBinding() schema.Binding {
	return schema.Binding{
		New:   func() any { return &Order{} },
		IsNil: func(rec any) bool { o, ok := rec.(*Order); return !ok || o == nil },
		Members: map[string]schema.MemberBinding{
			"Id": {
				Get: func(rec any) any { return rec.(*Order).Id },
				Set: func(rec, v any) { rec.(*Order).Id = v.(int64) },
			},
			"Notes": {
				Get: func(rec any) any { return rec.(*Order).Notes },
				Set: func(rec, v any) { rec.(*Order).Notes = v.(string) },
			},
			"Created": {
				Get: func(rec any) any { return rec.(*Order).Created },
				Set: func(rec, v any) { rec.(*Order).Created = v.(time.Time) },
			},
			"Customer": {
				Get: func(rec any) any {
					if c := rec.(*Order).Customer; c != nil {
						return c
					}

					return nil
				},
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Customer = nil
						return
					}
					rec.(*Order).Customer = v.(*Customer)
				},
			},
			"Items": {
				Get: func(rec any) any { return rec.(*Order).Items },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Items = nil
						return
					}
					rec.(*Order).Items = v.([]*Item)
				},
				Seq: itemSeqOps(),
			},
			"Tags": {
				Get: func(rec any) any { return rec.(*Order).Tags },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Tags = nil
						return
					}
					rec.(*Order).Tags = v.([]string)
				},
				Seq: strSeqOps(),
			},
			"Attributes": {
				Get: func(rec any) any { return rec.(*Order).Attributes },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Attributes = nil
						return
					}
					rec.(*Order).Attributes = v.(map[string]string)
				},
				Map: strMapOps(),
			},
			"Labels": {
				Get: func(rec any) any { return rec.(*Order).Labels },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Labels = nil
						return
					}
					rec.(*Order).Labels = v.(map[string]struct{})
				},
				Map: strSetOps(),
			},
			"Flags": {
				Get: func(rec any) any { return rec.(*Order).Flags },
				Set: func(rec, v any) { rec.(*Order).Flags = v.(uint64) },
			},
			"Grid": {
				Get: func(rec any) any { return &rec.(*Order).Grid },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Grid = [2][2]int64{}
						return
					}
					rec.(*Order).Grid = *v.(*[2][2]int64)
				},
				Arr: gridArrOps(),
			},
			"Animal": {
				Get: func(rec any) any {
					a := rec.(*Order).Animal
					if a.Tag == "" && a.Value == nil {
						return nil
					}

					return a
				},
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Animal = schema.Tagged{}
						return
					}
					rec.(*Order).Animal = v.(schema.Tagged)
				},
			},
			"Audit": {
				Get: func(rec any) any { return rec.(*Order).Audit },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Audit = nil
						return
					}
					rec.(*Order).Audit = v.([]string)
				},
				Seq: strSeqOps(),
			},
			"Secret": {
				Get: func(rec any) any { return rec.(*Order).Secret },
				Set: func(rec, v any) { rec.(*Order).Secret = v.(string) },
			},
			"Lines": {
				Get: func(rec any) any { return rec.(*Order).Lines },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*Order).Lines = nil
						return
					}
					rec.(*Order).Lines = v.([]*Item)
				},
				Seq: itemSeqOps(),
			},
		},
	}
}

func trackedDescriptor() schema.TypeDescriptor {
	return schema.TypeDescriptor{
		Name:          "TrackedOrder",
		DirtyTracking: true,
		Members: []schema.MemberDescriptor{
			{Name: "Id", Kind: schema.KindInt},
			{Name: "Notes", Kind: schema.KindString},
			{Name: "Items", Kind: schema.KindSeq, ElemKind: schema.KindStruct, ElemRef: "Item"},
			{Name: "Attrs", Kind: schema.KindMap, KeyKind: schema.KindString, ValueKind: schema.KindString},
		},
	}
}

func trackedBinding() schema.Binding {
	return schema.Binding{
		New:   func() any { return NewTrackedOrder() },
		IsNil: func(rec any) bool { t, ok := rec.(*TrackedOrder); return !ok || t == nil },
		Members: map[string]schema.MemberBinding{
			"Id": {
				Get: func(rec any) any { return rec.(*TrackedOrder).id },
				Set: func(rec, v any) { rec.(*TrackedOrder).id = v.(int64) },
			},
			"Notes": {
				Get: func(rec any) any { return rec.(*TrackedOrder).notes },
				Set: func(rec, v any) { rec.(*TrackedOrder).notes = v.(string) },
			},
			"Items": {
				Get: func(rec any) any { return rec.(*TrackedOrder).items },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*TrackedOrder).items = nil
						return
					}
					rec.(*TrackedOrder).items = v.([]*Item)
				},
				Seq: itemSeqOps(),
			},
			"Attrs": {
				Get: func(rec any) any { return rec.(*TrackedOrder).attrs },
				Set: func(rec, v any) {
					if v == nil {
						rec.(*TrackedOrder).attrs = nil
						return
					}
					rec.(*TrackedOrder).attrs = v.(map[string]string)
				},
				Map: strMapOps(),
			},
		},
	}
}
