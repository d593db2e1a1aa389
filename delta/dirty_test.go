package delta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/delta"
	"github.com/Quaverflow/deepdelta/deltatest"
)

// snapshotPair builds a tracked before/after pair in the same state with
// clean dirty-words, ready for targeted mutation through the setters.
func snapshotPair() (before, after *deltatest.TrackedOrder) {
	mk := func() *deltatest.TrackedOrder {
		o := deltatest.NewTrackedOrder()
		o.SetId(7)
		o.SetNotes("n")
		o.SetItems([]*deltatest.Item{{SKU: "A", Qty: 1}})
		o.PutAttr("env", "prod")
		o.ClearDirty()

		return o
	}

	return mk(), mk()
}

// TestComputeDirty_FastPathVisitsOnlyFlaggedMembers: the document contains
// exactly the flagged member, and the word clears after the emit.
func TestComputeDirty_FastPathVisitsOnlyFlaggedMembers(t *testing.T) {
	w := deltatest.NewWorld()
	before, after := snapshotPair()
	after.SetNotes("m")

	doc := delta.Compute(w.Tracked, before, after, core.NewContext())
	require.Equal(t, []delta.Op{{Code: delta.OpSetMember, Member: 1, Value: "m"}}, doc.Ops())
	assert.False(t, after.DirtyBits().Any(), "word cleared after the emit")
}

// TestComputeDirty_FastModeTrustsStaleBits: a setter that rewrote the same
// value still leaves its bit set, and fast mode emits without re-comparing.
func TestComputeDirty_FastModeTrustsStaleBits(t *testing.T) {
	w := deltatest.NewWorld()
	before, after := snapshotPair()
	after.SetNotes("n") // same value: the member may NOT actually differ

	doc := delta.Compute(w.Tracked, before, after, core.NewContext())
	require.Equal(t, 1, doc.Len(), "fast mode trusts the bit")
	assert.Equal(t, delta.OpSetMember, doc.Op(0).Code)
}

// TestComputeDirty_ValidateModeMatchesBaseline: with validation on, a stale
// bit emits nothing, and a real change emits exactly the baseline ops.
func TestComputeDirty_ValidateModeMatchesBaseline(t *testing.T) {
	w := deltatest.NewWorld()
	ctx := core.NewContext(core.WithValidateDirty())

	before, after := snapshotPair()
	after.SetNotes("n") // stale bit
	doc := delta.Compute(w.Tracked, before, after, ctx)
	assert.True(t, doc.IsEmpty(), "validate mode re-checks and stays silent")
	assert.False(t, after.DirtyBits().Any(), "word still clears after the emit")

	before, after = snapshotPair()
	after.SetNotes("m")
	after.PutAttr("env", "stage")
	doc = delta.Compute(w.Tracked, before, after, core.NewContext(core.WithValidateDirty()))
	require.Equal(t, []delta.Op{
		{Code: delta.OpSetMember, Member: 1, Value: "m"},
		{Code: delta.OpMapSet, Member: 3, Key: "env", Value: "stage"},
	}, doc.Ops(), "validate mode equals the baseline algorithm on the flagged members")
}

// TestComputeDirty_UnflaggedDivergenceIsInvisible documents the facade
// contract: an unset bit promises "unchanged", so a divergence smuggled in
// outside the setters is not emitted.
func TestComputeDirty_UnflaggedDivergenceIsInvisible(t *testing.T) {
	w := deltatest.NewWorld()
	_, after := snapshotPair()
	after.SetNotes("m")

	// Divergence on Id without a mark: engine must not see it.
	beforeDivergent := deltatest.NewTrackedOrder()
	beforeDivergent.SetId(999)
	beforeDivergent.SetNotes("n")
	beforeDivergent.SetItems([]*deltatest.Item{{SKU: "A", Qty: 1}})
	beforeDivergent.PutAttr("env", "prod")
	beforeDivergent.ClearDirty()

	doc := delta.Compute(w.Tracked, beforeDivergent, after, core.NewContext())
	require.Equal(t, 1, doc.Len())
	assert.Equal(t, 1, doc.Op(0).Member, "only the flagged member emits")
}

// TestComputeDirty_GranularContainerUnderFastMode: container members stay
// granular even when their bit is trusted.
func TestComputeDirty_GranularContainerUnderFastMode(t *testing.T) {
	w := deltatest.NewWorld()
	before, after := snapshotPair()
	after.SetItems([]*deltatest.Item{{SKU: "A", Qty: 1}, {SKU: "B", Qty: 5}})

	doc := delta.Compute(w.Tracked, before, after, core.NewContext())
	require.Equal(t, 1, doc.Len())
	assert.Equal(t, delta.OpSeqAddAt, doc.Op(0).Code, "windowed diff, not wholesale replacement")
	assert.Equal(t, 1, doc.Op(0).Index)
}

// TestComputeDirty_UntrackedAfterFallsBackToBaseline: the fast path only
// engages when the after side exposes the facade.
func TestComputeDirty_UntrackedAfterFallsBackToBaseline(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := baseOrder(), baseOrder()
	b.Notes = "b"

	doc := delta.Compute(w.Order, a, b, core.NewContext())
	require.Equal(t, 1, doc.Len(), "plain types run the baseline")
}
