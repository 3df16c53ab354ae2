package connection

import "fmt"

const (
	// DefaultDirectiveName is the marker directive used when none is configured.
	DefaultDirectiveName = "connection"

	edgeInterfaceArgument = "edgeInterface"
	cacheControlDirective = "cacheControl"
	maxAgeArgument        = "maxAge"
	inheritMaxAgeArgument = "inheritMaxAge"
)

// Options configures a Directive.
//
// Defaults:
// - DirectiveName: "connection"
// - CacheControl:  {Enabled: true}
type Options struct {
	DirectiveName string
	CacheControl  CacheControl
}

type Option func(*Options)

// WithDirectiveName overrides the marker directive name. An empty name keeps
// the default.
func WithDirectiveName(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.DirectiveName = name
		}
	}
}

func WithCacheControl(cc CacheControl) Option { return func(o *Options) { o.CacheControl = cc } }

func defaultOptions() Options {
	return Options{
		DirectiveName: DefaultDirectiveName,
		CacheControl:  DefaultCacheControl(),
	}
}

// Directive finds fields marked for pagination and accumulates the
// configuration of their targets. A Directive owns one Table and is meant for
// a single run.
type Directive struct {
	name  string
	cache CacheControl
	table *Table
}

func New(opts ...Option) *Directive {
	o := defaultOptions()
	for _, f := range opts {
		f(&o)
	}
	return &Directive{name: o.DirectiveName, cache: o.CacheControl, table: NewTable()}
}

func (d *Directive) Name() string { return d.name }

// Table returns the configuration accumulated by Scan.
func (d *Directive) Table() *Table { return d.table }

// TypeDefs returns the SDL declaration of the marker directive.
func (d *Directive) TypeDefs() string {
	return fmt.Sprintf("directive @%s(%s: String) on FIELD_DEFINITION", d.name, edgeInterfaceArgument)
}
