// Package deltatest: test helpers shared across the engine suites.
package deltatest

import (
	"testing"
	"time"

	"github.com/d4l3k/messagediff"
	fuzz "github.com/google/gofuzz"
	"github.com/mohae/deepcopy"

	"github.com/Quaverflow/deepdelta/compare"
	"github.com/Quaverflow/deepdelta/core"
	"github.com/Quaverflow/deepdelta/schema"
)

// Clone deep-copies a fixture value. Round-trip tests clone the "before"
// side so applying a document can never touch the original. Do not clone
// cyclic fixtures (Node graphs); the copy would never terminate.
func Clone[T any](v T) T {
	return deepcopy.Copy(v).(T)
}

// RequireDeepEqual fails the test when the two values are not deep-equal
// under the schema, printing a readable diff of the raw structs.
func RequireDeepEqual(t *testing.T, s *schema.Schema, want, got any) {
	t.Helper()
	if compare.Equal(s, want, got, core.NewContext()) {
		return
	}
	diff, _ := messagediff.PrettyDiff(want, got)
	t.Fatalf("values differ under schema %s:\n%s", s.Name, diff)
}

// NewFuzzer returns a seeded fuzzer tuned for the fixture model: bounded
// containers, pinned-UTC timestamps, and polymorphic members that pick a
// registered concrete type.
func NewFuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.NewWithSeed(seed).
		NilChance(0.1).
		NumElements(0, 4).
		Funcs(
			func(tg *schema.Tagged, c fuzz.Continue) {
				if c.RandBool() {
					d := &Dog{}
					c.Fuzz(&d.Name)
					*tg = schema.Tagged{Tag: "Dog", Value: d}
					return
				}
				ct := &Cat{}
				c.Fuzz(&ct.Name)
				ct.Lives = int64(c.Intn(9) + 1)
				*tg = schema.Tagged{Tag: "Cat", Value: ct}
			},
			func(t *time.Time, c fuzz.Continue) {
				*t = time.Unix(int64(c.Intn(1_000_000_000)), int64(c.Intn(1_000_000_000))).UTC()
			},
		)
}

// DogTagged wraps a Dog payload in its registry variant.
func DogTagged(name string) schema.Tagged {
	return schema.Tagged{Tag: "Dog", Value: &Dog{Name: name}}
}

// CatTagged wraps a Cat payload in its registry variant.
func CatTagged(name string, lives int64) schema.Tagged {
	return schema.Tagged{Tag: "Cat", Value: &Cat{Name: name, Lives: lives}}
}

// FuzzOrder produces one fuzzed Order.
func FuzzOrder(seed int64) *Order {
	o := &Order{}
	NewFuzzer(seed).Fuzz(o)

	return o
}
