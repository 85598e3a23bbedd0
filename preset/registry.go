package preset

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/language"

	"github.com/iw2rmb/retype/intercept"
)

var (
	// ErrUnknown is returned for a name no factory is registered under.
	ErrUnknown = errors.New("unknown preset")
	// ErrArgs is returned when a factory rejects its arguments.
	ErrArgs = errors.New("invalid preset arguments")
)

// Args are the parameters a preset may take.
type Args struct {
	// N is a count, used by limit.
	N int
	// Chars is a character set, used by allow and deny.
	Chars string
	// Lang is a BCP 47 tag, used by case mapping. Empty means undetermined.
	Lang string
}

// Factory builds a transformer from its arguments.
type Factory func(Args) (intercept.Transformer, error)

// Registry maps preset names to factories.
type Registry struct {
	factories map[string]Factory
	usage     map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		usage:     make(map[string]string),
	}
}

// Register adds or replaces the factory for name.
func (r *Registry) Register(name, usage string, f Factory) {
	r.factories[name] = f
	r.usage[name] = usage
}

// Build returns the transformer registered under name.
func (r *Registry) Build(name string, a Args) (intercept.Transformer, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	t, err := f(a)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}
	return t, nil
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Usage returns the one-line description registered with name.
func (r *Registry) Usage(name string) string { return r.usage[name] }

// Default returns a registry holding every preset of this package.
func Default() *Registry {
	r := NewRegistry()
	r.Register("upper", "map to upper case (lang)", func(a Args) (intercept.Transformer, error) {
		tag, err := parseLang(a.Lang)
		if err != nil {
			return nil, err
		}
		return Uppercase(tag), nil
	})
	r.Register("lower", "map to lower case (lang)", func(a Args) (intercept.Transformer, error) {
		tag, err := parseLang(a.Lang)
		if err != nil {
			return nil, err
		}
		return Lowercase(tag), nil
	})
	r.Register("strip-diacritics", "remove combining marks", fixed(StripDiacritics()))
	r.Register("narrow", "fold full-width forms", fixed(Narrow()))
	r.Register("digits", "keep decimal digits", fixed(Digits()))
	r.Register("sanitize", "drop control characters", fixed(Sanitize()))
	r.Register("allow", "keep only chars", func(a Args) (intercept.Transformer, error) {
		if a.Chars == "" {
			return nil, fmt.Errorf("%w: allow needs chars", ErrArgs)
		}
		return Allow(a.Chars), nil
	})
	r.Register("deny", "drop chars", func(a Args) (intercept.Transformer, error) {
		if a.Chars == "" {
			return nil, fmt.Errorf("%w: deny needs chars", ErrArgs)
		}
		return Deny(a.Chars), nil
	})
	r.Register("limit", "cap the text at n grapheme clusters", func(a Args) (intercept.Transformer, error) {
		if a.N <= 0 {
			return nil, fmt.Errorf("%w: limit needs n > 0, got %d", ErrArgs, a.N)
		}
		return Limit(a.N), nil
	})
	return r
}

func fixed(t intercept.Transformer) Factory {
	return func(Args) (intercept.Transformer, error) { return t, nil }
}

func parseLang(s string) (language.Tag, error) {
	if s == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("%w: lang %q: %v", ErrArgs, s, err)
	}
	return tag, nil
}
