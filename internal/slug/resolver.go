package slug

import (
	"context"
	"fmt"

	"github.com/sahzadahmad246/unmatchedlines/internal/domain"
)

// DefaultMaxSuffix bounds the numeric probe so a pathological collision set
// cannot loop forever.
const DefaultMaxSuffix = 10000

// ExistsFunc reports whether a candidate slug is already taken. Callers that
// re-resolve an existing record exclude its own slug inside the closure.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Resolver produces unique, URL-safe, human-readable identifiers.
type Resolver struct {
	MaxSuffix int
}

func NewResolver() *Resolver {
	return &Resolver{MaxSuffix: DefaultMaxSuffix}
}

// Resolve normalizes text for lang and probes base, base-1, base-2, … until
// exists reports a free candidate. The first writer gets the bare slug;
// suffix assignment depends only on insertion order.
func (r *Resolver) Resolve(ctx context.Context, text string, lang domain.Language, exists ExistsFunc) (string, error) {
	base := Normalize(text, lang)
	if base == "" {
		base = "untitled"
	}

	max := r.MaxSuffix
	if max <= 0 {
		max = DefaultMaxSuffix
	}

	for i := 0; i <= max; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d", base, i)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", domain.ErrResolutionExhausted
}

// ResolveSet resolves one slug per language from the per-language source
// texts, in fixed language order. Each language's collision set includes the
// slugs assigned earlier in the same call, so the three variants of one work
// can never collide with each other. Empty variant texts fall back to the
// English text.
func (r *Resolver) ResolveSet(ctx context.Context, texts domain.Localized, exists ExistsFunc) (domain.Localized, error) {
	var out domain.Localized
	assigned := map[string]struct{}{}

	probe := func(ctx context.Context, candidate string) (bool, error) {
		if _, ok := assigned[candidate]; ok {
			return true, nil
		}
		return exists(ctx, candidate)
	}

	for _, lang := range domain.Languages {
		text := texts.Get(lang)
		if text == "" {
			text = texts.En
		}
		s, err := r.Resolve(ctx, text, lang, probe)
		if err != nil {
			return domain.Localized{}, err
		}
		assigned[s] = struct{}{}
		out.Set(lang, s)
	}

	return out, nil
}
