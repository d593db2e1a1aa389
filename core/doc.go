// Package core holds the shared layer every engine in deepdelta leans on:
// the per-invocation Comparison Context, the cycle pair set, the
// zero-allocation path builder, and the scalar/time/string equality helpers
// that keep the comparison and delta engines from ever disagreeing.
//
// ⚙️ Usage:
//
//	import "github.com/Quaverflow/deepdelta/core"
//
//	ctx := core.NewContext(
//	  core.WithCulture(language.English), // string folding & formatting
//	  core.WithValidateDirty(),           // re-check dirty bits before emit
//	)
//
// A Context is cheap to build and is NOT safe for concurrent use: create one
// per comparison, diff, or delta invocation (or one per goroutine and Reset
// it between invocations).
//
// Performance:
//
//   - Path appends never allocate for paths up to 256 characters
//   - The cycle set is allocated lazily, only for cycle-tracked types
package core
