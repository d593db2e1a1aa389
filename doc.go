// Package deepdelta is the runtime behind generated, reflection-free
// DeepEqual / Diff / Delta routines for user record types.
//
// 🚀 What is deepdelta?
//
//	A build-time generator emits, per record type, a schema plus accessor
//	bindings; this module is the engine those bindings plug into:
//
//	  • Equal — structural equality over arbitrarily nested object graphs
//	  • Diff  — path-qualified differences ("Customer.Address.Street")
//	  • Delta — a compact, applicable edit document, plus Apply
//
// ✨ Why deepdelta?
//
//   - Reflection-free        — all member access goes through generated accessors
//   - Allocation-lean        — stack-buffered paths, O(#dirty) fast deltas
//   - Deterministic          — identical inputs produce byte-identical documents
//   - Cycle-safe             — self-referential graphs always terminate
//
// Everything is organized under focused subpackages:
//
//	core/       — Comparison Context, path builder, equality & culture helpers
//	schema/     — type descriptors, compiled member tables, the type registry
//	compare/    — the Equal and Diff engines
//	delta/      — delta computation, dirty fast path, and the Apply engine
//	dirty/      — the per-instance dirty-word tracker generated setters mark
//	wire/       — the bit-exact binary delta codec
//	regexcache/ — shared at-most-once compiled pattern cache
//	flagutil/   — flags-enum mask helpers
//
// Quick sketch:
//
//	sch := deltatest.NewWorld().Order        // a registered, warmed-up schema
//	doc := delta.Compute(sch, before, after, core.NewContext())
//	got, err := delta.Apply(sch, clone, doc) // got is deep-equal to after
//
// See DESIGN.md for the component map and the compare package documentation
// for the per-kind comparison rules.
//
//	go get github.com/Quaverflow/deepdelta
package deepdelta
