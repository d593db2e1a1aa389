package compare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quaverflow/deepdelta/compare"
	"github.com/Quaverflow/deepdelta/deltatest"
)

// paths extracts the Path column for compact assertions.
func paths(diffs []compare.Difference) []string {
	out := make([]string, 0, len(diffs))
	for _, d := range diffs {
		out = append(out, d.Path)
	}

	return out
}

// TestDiff_EmptyOnEqual ties Diff to Equal: no differences iff equal.
func TestDiff_EmptyOnEqual(t *testing.T) {
	w := deltatest.NewWorld()
	a := baseOrder()

	assert.Empty(t, compare.Diff(w.Order, a, deltatest.Clone(a), nil))
}

// TestDiff_ScalarPath covers a leaf member difference.
func TestDiff_ScalarPath(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := baseOrder(), baseOrder()
	b.Notes = "b"

	diffs := compare.Diff(w.Order, a, b, nil)
	require.Len(t, diffs, 1)
	assert.Equal(t, "Notes", diffs[0].Path)
	assert.Equal(t, compare.DiffModified, diffs[0].Kind)
	assert.Equal(t, "a", diffs[0].Left)
	assert.Equal(t, "b", diffs[0].Right)
}

// TestDiff_NestedPath covers dot-joined nested record paths.
func TestDiff_NestedPath(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := baseOrder(), baseOrder()
	b.Customer.Address.Street = "Side"

	diffs := compare.Diff(w.Order, a, b, nil)
	require.Len(t, diffs, 1)
	assert.Equal(t, "Customer.Address.Street", diffs[0].Path)
}

// TestDiff_SequencePaths covers bracketed element paths, including the
// trailing removal when the right side is shorter.
func TestDiff_SequencePaths(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := baseOrder(), baseOrder()
	b.Items = []*deltatest.Item{{SKU: "A", Qty: 1}, {SKU: "C", Qty: 3}}

	diffs := compare.Diff(w.Order, a, b, nil)
	assert.Equal(t, []string{"Items[1].SKU", "Items[1].Qty", "Items[2]"}, paths(diffs))
	assert.Equal(t, compare.DiffRemoved, diffs[2].Kind, "surplus left element is a removal")
}

// TestDiff_MapPaths covers dictionary entry changes, keys in sorted order.
func TestDiff_MapPaths(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := baseOrder(), baseOrder()
	b.Attributes = map[string]string{"env": "prod", "src": "ci", "role": "x"}

	diffs := compare.Diff(w.Order, a, b, nil)
	require.Len(t, diffs, 2)
	assert.Equal(t, []string{"Attributes[src]", "Attributes[role]"}, paths(diffs))
	assert.Equal(t, compare.DiffModified, diffs[0].Kind)
	assert.Equal(t, compare.DiffAdded, diffs[1].Kind)
}

// TestDiff_SetMembership covers set add/remove entries.
func TestDiff_SetMembership(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := baseOrder(), baseOrder()
	b.Labels = map[string]struct{}{"x": {}, "z": {}}

	diffs := compare.Diff(w.Order, a, b, nil)
	require.Len(t, diffs, 2)
	assert.Equal(t, "Labels[y]", diffs[0].Path)
	assert.Equal(t, compare.DiffRemoved, diffs[0].Kind)
	assert.Equal(t, "Labels[z]", diffs[1].Path)
	assert.Equal(t, compare.DiffAdded, diffs[1].Kind)
}

// TestDiff_ArrayCoordinates covers multi-dimensional element paths.
func TestDiff_ArrayCoordinates(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := baseOrder(), baseOrder()
	b.Grid[1][0] = 30

	diffs := compare.Diff(w.Order, a, b, nil)
	require.Len(t, diffs, 1)
	assert.Equal(t, "Grid[1][0]", diffs[0].Path)
	assert.Equal(t, int64(3), diffs[0].Left)
	assert.Equal(t, int64(30), diffs[0].Right)
}

// TestDiff_PolymorphicTagSwitch reports one member-level entry, never a
// nested scope across runtime types.
func TestDiff_PolymorphicTagSwitch(t *testing.T) {
	w := deltatest.NewWorld()
	a, b := baseOrder(), baseOrder()
	b.Animal = deltatest.CatTagged("Whiskers", 9)

	diffs := compare.Diff(w.Order, a, b, nil)
	require.Len(t, diffs, 1)
	assert.Equal(t, "Animal", diffs[0].Path)
}

// TestDiff_TopLevelNil yields the single whole-value difference.
func TestDiff_TopLevelNil(t *testing.T) {
	w := deltatest.NewWorld()
	a := baseOrder()

	diffs := compare.Diff(w.Order, a, nil, nil)
	require.Len(t, diffs, 1)
	assert.Equal(t, "", diffs[0].Path, "top-level difference carries an empty path")
	assert.Equal(t, compare.DiffModified, diffs[0].Kind)
}

// TestDiff_CyclicPerturbed mirrors the cyclic equality scenario on Diff.
func TestDiff_CyclicPerturbed(t *testing.T) {
	w := deltatest.NewWorld()
	mkRing := func(bName string) *deltatest.Node {
		a := &deltatest.Node{Name: "A"}
		b := &deltatest.Node{Name: bName, Next: a}
		a.Next = b

		return a
	}

	assert.Empty(t, compare.Diff(w.Node, mkRing("B"), mkRing("B"), nil))

	diffs := compare.Diff(w.Node, mkRing("B"), mkRing("B'"), nil)
	require.Len(t, diffs, 1)
	assert.Equal(t, "Next.Name", diffs[0].Path)
}
