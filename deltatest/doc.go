// Package deltatest provides the shared fixtures the engine tests run
// against: a small order-management object model with hand-written accessor
// bindings (standing in for generator output), a fresh registry per World,
// and test helpers for cloning, fuzzing, and failure diffs.
//
// The bindings here are deliberately written the way the generator emits
// them — typed closures, container vtables, normalized scalar payloads —
// so the tests exercise exactly the surface real generated code uses.
package deltatest
