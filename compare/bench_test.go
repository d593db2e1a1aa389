package compare_test

import (
	"testing"

	"github.com/Quaverflow/deepdelta/compare"
	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/deltatest"
)

// BenchmarkEqual_DeepEqualOrders measures a full structural walk.
func BenchmarkEqual_DeepEqualOrders(b *testing.B) {
	w := deltatest.NewWorld()
	x := baseOrder()
	y := deltatest.Clone(x)
	ctx := core.NewContext()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !compare.Equal(w.Order, x, y, ctx) {
			b.Fatal("fixtures diverged")
		}
	}
}

// BenchmarkEqual_IdentityFastPath measures the same-handle short-circuit.
func BenchmarkEqual_IdentityFastPath(b *testing.B) {
	w := deltatest.NewWorld()
	x := baseOrder()
	ctx := core.NewContext()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !compare.Equal(w.Order, x, x, ctx) {
			b.Fatal("identity must be equal")
		}
	}
}

// BenchmarkDiff_SingleDivergence measures path-qualified diffing.
func BenchmarkDiff_SingleDivergence(b *testing.B) {
	w := deltatest.NewWorld()
	x, y := baseOrder(), baseOrder()
	y.Customer.Address.Street = "Side"

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if len(compare.Diff(w.Order, x, y, core.NewContext())) != 1 {
			b.Fatal("expected one difference")
		}
	}
}
