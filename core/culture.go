// Package core: culture-aware string utilities. The engines themselves only
// ever do ordinal comparison; these helpers exist so schemas can opt a
// string member into culture-sensitive equality, and so the validation
// layer above this core can format values for the Context's locale.
package core

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CaseInsensitive returns a string equality function that folds case under
// the given culture. The collator is stateful, so calls are serialized
// internally; the returned func is safe for concurrent use.
//
// Typical use: register it once under a name and reference it from member
// descriptors via their custom-equality ref.
func CaseInsensitive(tag language.Tag) func(a, b string) bool {
	var mu sync.Mutex
	col := collate.New(tag, collate.IgnoreCase)

	return func(a, b string) bool {
		mu.Lock()
		defer mu.Unlock()

		return col.CompareString(a, b) == 0
	}
}

// Printer returns a message printer for the given culture, used by
// formatting helpers outside the comparison hot path.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// FormatValue renders v under the Context's culture. Diff consumers use it
// to present Left/Right values; the engines never call it.
func (c *Context) FormatValue(v any) string {
	return Printer(c.Culture).Sprintf("%v", v)
}
