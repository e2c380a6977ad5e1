// Package naming assigns identifiers to composite types discovered during
// inference.
package naming

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FallbackName is used when a path segment sanitizes to nothing, e.g. a key
// made entirely of symbols.
const FallbackName = "Field"

// Allocator maps occurrence paths to unique, language-safe type names.
// Allocation is deterministic: the same path always yields the same name
// within one run, which is what lets repeated object shapes at one path
// share a single definition. Collisions between distinct paths that
// sanitize to the same identifier get a numeric suffix.
type Allocator struct {
	byPath map[string]string
	counts map[string]int
}

// NewAllocator creates an empty allocator. One inference run owns one
// allocator; nothing persists across runs.
func NewAllocator() *Allocator {
	return &Allocator{
		byPath: make(map[string]string),
		counts: make(map[string]int),
	}
}

// SanitizeName returns name unchanged when it is already a plain
// identifier, otherwise its PascalCase form. fallback covers names with
// nothing to salvage, empty included.
func SanitizeName(name, fallback string) string {
	if identifier.MatchString(name) {
		return name
	}
	// PascalCasing can still leave a leading digit ("123abc"), so the
	// result is checked again.
	if s := strcase.ToCamel(name); identifier.MatchString(s) {
		return s
	}
	return fallback
}

// Reserve pins a caller-chosen name, used for the root type so nested
// allocations cannot take it. The name is recorded verbatim.
func (a *Allocator) Reserve(name string) string {
	if name == "" {
		name = FallbackName
	}
	a.counts[name]++
	return name
}

// Allocate returns the name for the object shape occurring at path, the
// sequence of field keys from the document root. The last segment is
// sanitized to PascalCase; a repeat of the same path returns the previously
// assigned name.
func (a *Allocator) Allocate(path []string) string {
	key := strings.Join(path, ".")
	if name, ok := a.byPath[key]; ok {
		return name
	}

	base := FallbackName
	if len(path) > 0 {
		if s := strcase.ToCamel(path[len(path)-1]); s != "" {
			base = s
		}
	}

	name := base
	if count := a.counts[base]; count > 0 {
		name = fmt.Sprintf("%s%d", base, count)
	}
	a.counts[base]++
	a.byPath[key] = name
	return name
}
