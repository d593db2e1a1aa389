package wire_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quaverflow/deepdelta/compare"
	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/delta"
	"github.com/Quaverflow/deepdelta/deltatest"
	"github.com/Quaverflow/deepdelta/wire"
)

// fixturePair builds a before/after pair whose delta touches scalars, a
// nested scope, sequence edits, map edits, the array, the set, and the
// polymorphic member — one document exercising every payload shape.
func fixturePair() (*deltatest.Order, *deltatest.Order) {
	a := &deltatest.Order{
		Id:      1,
		Notes:   "a",
		Created: time.Unix(1_700_000_000, 0).UTC(),
		Customer: &deltatest.Customer{
			Id: 1, Name: "C",
			Address: &deltatest.Address{Street: "Main", City: "Lisbon"},
		},
		Items:      []*deltatest.Item{{SKU: "A", Qty: 1}, {SKU: "B", Qty: 2}, {SKU: "C", Qty: 3}},
		Tags:       []string{"red", "blue"},
		Attributes: map[string]string{"env": "prod", "src": "bench"},
		Labels:     map[string]struct{}{"x": {}},
		Flags:      0b0101,
		Grid:       [2][2]int64{{1, 2}, {3, 4}},
		Animal:     deltatest.DogTagged("Rex"),
		Audit:      []string{"created"},
		Lines:      []*deltatest.Item{{SKU: "A", Qty: 1}},
	}
	b := deltatest.Clone(a)
	b.Notes = "b"
	b.Created = a.Created.Add(time.Hour)
	b.Customer.Name = "D"
	b.Items = []*deltatest.Item{{SKU: "A", Qty: 1}, {SKU: "C", Qty: 3}, {SKU: "Z", Qty: 9}}
	b.Attributes = map[string]string{"env": "prod", "src": "ci", "role": "x"}
	b.Labels = map[string]struct{}{"x": {}, "y": {}}
	b.Grid[0][1] = 20
	b.Animal = deltatest.CatTagged("Whiskers", 9)
	b.Audit = []string{"created", "shipped"}

	return a, b
}

// TestWire_RoundTripThroughApply encodes, decodes, and applies; the decoded
// document must reproduce the after value exactly.
func TestWire_RoundTripThroughApply(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := fixturePair()

	doc := delta.Compute(w.Order, a, b, core.NewContext())
	require.False(t, doc.IsEmpty())

	data, err := wire.Encode(w.Order, doc)
	require.NoError(t, err)

	decoded, err := wire.Decode(w.Order, data)
	require.NoError(t, err)
	require.Equal(t, doc.Len(), decoded.Len(), "op counts survive")

	got, err := delta.Apply(w.Order, deltatest.Clone(a), decoded)
	require.NoError(t, err)
	if !compare.Equal(w.Order, b, got, core.NewContext()) {
		t.Fatal("decoded document does not reproduce the after value")
	}
}

// TestWire_ByteDeterminism: encoding is a pure function of the document,
// and re-encoding a decoded document is byte-identical.
func TestWire_ByteDeterminism(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := fixturePair()

	doc := delta.Compute(w.Order, a, b, core.NewContext())
	first, err := wire.Encode(w.Order, doc)
	require.NoError(t, err)
	second, err := wire.Encode(w.Order, doc)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same document, same bytes")

	decoded, err := wire.Decode(w.Order, first)
	require.NoError(t, err)
	reencoded, err := wire.Encode(w.Order, decoded)
	require.NoError(t, err)
	assert.Equal(t, first, reencoded, "decode inverts encode byte-exactly")
}

// TestWire_ReplaceObjectSnapshot sends a whole-object replacement: the
// decoded instance must be fresh, not an alias of the encoder's value.
func TestWire_ReplaceObjectSnapshot(t *testing.T) {
	w := deltatest.NewWorld()
	_, b := fixturePair()

	doc := delta.Compute(w.Order, nil, b, core.NewContext())
	data, err := wire.Encode(w.Order, doc)
	require.NoError(t, err)

	decoded, err := wire.Decode(w.Order, data)
	require.NoError(t, err)
	got, err := delta.Apply(w.Order, nil, decoded)
	require.NoError(t, err)

	order := got.(*deltatest.Order)
	require.NotSame(t, b, order, "decoded snapshot is a fresh instance")
	if !compare.Equal(w.Order, b, order, core.NewContext()) {
		t.Fatal("snapshot round-trip lost data")
	}

	// Mutating the decoded instance must not touch the encoder's value.
	order.Attributes["env"] = "poked"
	assert.Equal(t, "prod", b.Attributes["env"], "containers decoded fresh")
}

// TestWire_UnknownPolymorphicTagFailsEncode: unregistered tags error,
// nothing is silently skipped.
func TestWire_UnknownPolymorphicTagFailsEncode(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := fixturePair()
	b.Animal = deltatest.DogTagged("Rex")
	b.Animal.Tag = "Ghost"

	doc := delta.Compute(w.Order, a, b, core.NewContext())
	_, err := wire.Encode(w.Order, doc)
	assert.ErrorIs(t, err, wire.ErrUnknownType)
}

// TestWire_TruncatedAndCorruptInput exercises the decode error surface.
func TestWire_TruncatedAndCorruptInput(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := fixturePair()
	doc := delta.Compute(w.Order, a, b, core.NewContext())
	data, err := wire.Encode(w.Order, doc)
	require.NoError(t, err)

	for cut := 1; cut < len(data); cut += 7 {
		_, err := wire.Decode(w.Order, data[:len(data)-cut])
		assert.Error(t, err, "truncated at -%d bytes must not decode", cut)
	}

	_, err = wire.Decode(w.Order, []byte{0xFF, 0xFF, 0xFF})
	assert.Error(t, err, "garbage input")
}

// TestWire_EmptyDocument round-trips the zero-op document.
func TestWire_EmptyDocument(t *testing.T) {
	w := deltatest.NewWorld()

	data, err := wire.Encode(w.Order, delta.FromOps(nil))
	require.NoError(t, err)
	decoded, err := wire.Decode(w.Order, data)
	require.NoError(t, err)
	assert.True(t, decoded.IsEmpty())
}
