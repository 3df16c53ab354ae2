package connection

import "strconv"

// CacheControl selects how @cacheControl hints on paginated fields are carried
// over to the synthesized types.
type CacheControl struct {
	// Enabled turns cache hint propagation on. When false no clause is ever
	// emitted, whatever the fields declare.
	Enabled bool
	// InheritMaxAge marks every synthesized type with
	// @cacheControl(inheritMaxAge: true) instead of computing a maxAge.
	InheritMaxAge bool
}

// DefaultCacheControl propagates maxAge hints.
func DefaultCacheControl() CacheControl { return CacheControl{Enabled: true} }

type hintKind uint8

const (
	hintNone hintKind = iota
	hintMaxAge
	hintInherit
)

// CacheHint is the cache state accumulated for one target. The zero value
// carries no hint.
type CacheHint struct {
	kind   hintKind
	maxAge int
}

func NoHint() CacheHint           { return CacheHint{} }
func MaxAgeHint(n int) CacheHint   { return CacheHint{kind: hintMaxAge, maxAge: n} }
func InheritMaxAgeHint() CacheHint { return CacheHint{kind: hintInherit} }

func (h CacheHint) IsZero() bool { return h.kind == hintNone }

func (h CacheHint) InheritMaxAge() bool { return h.kind == hintInherit }

// MaxAge returns the recorded max age, if any.
func (h CacheHint) MaxAge() (int, bool) {
	if h.kind != hintMaxAge {
		return 0, false
	}
	return h.maxAge, true
}

// Merge folds o into h. inheritMaxAge is sticky; otherwise the larger maxAge
// wins and a missing maxAge never lowers a recorded one. Merge is commutative,
// associative and idempotent.
func (h CacheHint) Merge(o CacheHint) CacheHint {
	switch {
	case h.kind == hintInherit || o.kind == hintInherit:
		return InheritMaxAgeHint()
	case h.kind == hintNone:
		return o
	case o.kind == hintNone:
		return h
	case o.maxAge > h.maxAge:
		return o
	default:
		return h
	}
}

// Directive renders the @cacheControl clause for h, or "" when h is empty.
func (h CacheHint) Directive() string {
	switch h.kind {
	case hintInherit:
		return "@" + cacheControlDirective + "(inheritMaxAge: true)"
	case hintMaxAge:
		return "@" + cacheControlDirective + "(maxAge: " + strconv.Itoa(h.maxAge) + ")"
	default:
		return ""
	}
}

func (h CacheHint) String() string {
	switch h.kind {
	case hintInherit:
		return "inheritMaxAge"
	case hintMaxAge:
		return "maxAge=" + strconv.Itoa(h.maxAge)
	default:
		return "none"
	}
}
