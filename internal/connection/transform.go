package connection

import (
	"context"
	"fmt"
	"strings"
	"time"

	eventbus "github.com/Yunoo/graphql-pagination-transform/internal/eventbus"
	events "github.com/Yunoo/graphql-pagination-transform/internal/events"
	language "github.com/Yunoo/graphql-pagination-transform/internal/language"
	runid "github.com/Yunoo/graphql-pagination-transform/internal/runid"
)

const (
	synthesizedSourceName  = "pagination.graphql"
	declarationsSourceName = "pagination_directives.graphql"

	cacheControlScopeEnum = "CacheControlScope"
)

const cacheControlDeclaration = `directive @cacheControl(maxAge: Int, scope: CacheControlScope, inheritMaxAge: Boolean) on FIELD_DEFINITION | OBJECT | INTERFACE | UNION`

const cacheControlScopeDeclaration = `enum CacheControlScope {
  PUBLIC
  PRIVATE
}`

// Input is a single transform request.
type Input struct {
	Sources []*language.Source
	// DirectiveName overrides the marker directive; empty means "connection".
	DirectiveName string
	// CacheControl overrides the cache policy; nil means propagate maxAge.
	CacheControl *CacheControl
}

// Transform builds the schema from in.Sources, synthesizes the connection
// types for every field carrying the marker directive, rewrites those fields
// and returns the printed result. Any error aborts the run without output.
func Transform(ctx context.Context, in Input) (out string, err error) {
	opts := []Option{WithDirectiveName(in.DirectiveName)}
	if in.CacheControl != nil {
		opts = append(opts, WithCacheControl(*in.CacheControl))
	}
	d := New(opts...)

	ctx, _ = runid.NewContext(ctx)
	start := time.Now()
	eventbus.PublishGlobal(ctx, events.TransformStart{Sources: len(in.Sources), DirectiveName: d.Name()})
	defer func() {
		eventbus.PublishGlobal(ctx, events.TransformFinish{Err: err, Duration: time.Since(start)})
	}()

	doc, err := language.ParseSources(in.Sources...)
	if err != nil {
		return "", fmt.Errorf("parse schema: %w", err)
	}

	initial, err := language.Load(withDeclarations(in.Sources, doc, d, false)...)
	if err != nil {
		return "", fmt.Errorf("build schema: %w", err)
	}
	if err := d.Scan(initial); err != nil {
		return "", err
	}
	eventbus.PublishGlobal(ctx, events.TargetsScanned{Targets: d.Table().Len()})

	defs, err := Synthesize(d.Table(), initial)
	if err != nil {
		return "", err
	}
	eventbus.PublishGlobal(ctx, events.TypesSynthesized{Definitions: len(defs)})

	sources := append([]*language.Source(nil), in.Sources...)
	if len(defs) > 0 {
		sources = append(sources, language.NewSource(synthesizedSourceName, strings.Join(defs, "\n\n")))
	}
	merged, err := language.Load(withDeclarations(sources, doc, d, !d.Table().Hint().IsZero())...)
	if err != nil {
		return "", fmt.Errorf("rebuild schema: %w", err)
	}

	n := Rewrite(merged, d.Table(), d.Name())
	eventbus.PublishGlobal(ctx, events.FieldsRewritten{Fields: n})

	return language.FormatSchema(merged), nil
}

// TransformSDL runs Transform over a single SDL string.
func TransformSDL(ctx context.Context, sdl string, opts ...Option) (string, error) {
	o := defaultOptions()
	for _, f := range opts {
		f(&o)
	}
	return Transform(ctx, Input{
		Sources:       []*language.Source{language.NewSource("schema.graphql", sdl)},
		DirectiveName: o.DirectiveName,
		CacheControl:  &o.CacheControl,
	})
}

// withDeclarations appends the directive declarations the sources rely on but
// do not declare themselves.
func withDeclarations(sources []*language.Source, doc *language.SchemaDocument, d *Directive, hinted bool) []*language.Source {
	var decls []string
	if !language.DeclaresDirective(doc, d.Name()) {
		decls = append(decls, d.TypeDefs())
	}
	if (hinted || language.UsesDirective(doc, cacheControlDirective)) && !language.DeclaresDirective(doc, cacheControlDirective) {
		decls = append(decls, cacheControlDeclaration)
		if !language.DeclaresType(doc, cacheControlScopeEnum) {
			decls = append(decls, cacheControlScopeDeclaration)
		}
	}
	if len(decls) == 0 {
		return sources
	}
	out := append([]*language.Source(nil), sources...)
	return append(out, language.NewSource(declarationsSourceName, strings.Join(decls, "\n\n")))
}
