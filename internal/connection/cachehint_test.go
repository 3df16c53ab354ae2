package connection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// permutations returns every ordering of hints.
func permutations(hints []CacheHint) [][]CacheHint {
	if len(hints) <= 1 {
		return [][]CacheHint{append([]CacheHint(nil), hints...)}
	}
	var out [][]CacheHint
	for i := range hints {
		rest := make([]CacheHint, 0, len(hints)-1)
		rest = append(rest, hints[:i]...)
		rest = append(rest, hints[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]CacheHint{hints[i]}, p...))
		}
	}
	return out
}

func fold(hints []CacheHint) CacheHint {
	var h CacheHint
	for _, x := range hints {
		h = h.Merge(x)
	}
	return h
}

func TestCacheHintMerge(t *testing.T) {
	type testCase struct {
		name  string
		hints []CacheHint
		want  CacheHint
	}

	for _, tc := range []testCase{
		{name: "empty", hints: nil, want: NoHint()},
		{name: "only none", hints: []CacheHint{NoHint(), NoHint()}, want: NoHint()},
		{name: "max wins", hints: []CacheHint{MaxAgeHint(30), MaxAgeHint(60), MaxAgeHint(10)}, want: MaxAgeHint(60)},
		{name: "none never lowers", hints: []CacheHint{MaxAgeHint(30), NoHint(), NoHint()}, want: MaxAgeHint(30)},
		{name: "zero max age is kept", hints: []CacheHint{NoHint(), MaxAgeHint(0)}, want: MaxAgeHint(0)},
		{name: "inherit is sticky", hints: []CacheHint{MaxAgeHint(600), InheritMaxAgeHint(), MaxAgeHint(900), NoHint()}, want: InheritMaxAgeHint()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, p := range permutations(tc.hints) {
				require.Equal(t, tc.want, fold(p), "order %v", p)
			}
		})
	}
}

func TestCacheHintMergeIdempotent(t *testing.T) {
	for _, h := range []CacheHint{NoHint(), MaxAgeHint(5), InheritMaxAgeHint()} {
		require.Equal(t, h, h.Merge(h))
		require.Equal(t, h, NoHint().Merge(h))
	}
}

func TestCacheHintDirective(t *testing.T) {
	require.Equal(t, "", NoHint().Directive())
	require.Equal(t, "@cacheControl(maxAge: 60)", MaxAgeHint(60).Directive())
	require.Equal(t, "@cacheControl(maxAge: 0)", MaxAgeHint(0).Directive())
	require.Equal(t, "@cacheControl(inheritMaxAge: true)", InheritMaxAgeHint().Directive())

	n, ok := MaxAgeHint(42).MaxAge()
	require.True(t, ok)
	require.Equal(t, 42, n)
	_, ok = InheritMaxAgeHint().MaxAge()
	require.False(t, ok)
	require.True(t, InheritMaxAgeHint().InheritMaxAge())
	require.True(t, NoHint().IsZero())
}
