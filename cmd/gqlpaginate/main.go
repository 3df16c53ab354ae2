package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/Yunoo/graphql-pagination-transform/internal/config"
	connection "github.com/Yunoo/graphql-pagination-transform/internal/connection"
	discovery "github.com/Yunoo/graphql-pagination-transform/internal/discovery"
	eventbus "github.com/Yunoo/graphql-pagination-transform/internal/eventbus"
	events "github.com/Yunoo/graphql-pagination-transform/internal/events"
	otel "github.com/Yunoo/graphql-pagination-transform/internal/otel"
	runid "github.com/Yunoo/graphql-pagination-transform/internal/runid"
)

const rootUsage = `gqlpaginate: Relay connection types for GraphQL SDL

USAGE:
  gqlpaginate <command> [flags]

COMMANDS:
  transform   Synthesize Connection/Edge/PageInfo types and rewrite marked fields
  watch       Run transform again whenever a schema file changes
  help        Show help for any command
`

const commonFlags = `  -schema <path>                 Schema file or directory. Repeatable (default: .)
  -out <file>                    Write the result to file (default: stdout)
  -config <file>                 YAML configuration file; flags override it
  -directive <name>              Marker directive name (default: connection)
  -cache-control <bool>          Propagate @cacheControl hints (default: true)
  -cache-control.inherit <bool>  Emit @cacheControl(inheritMaxAge: true) instead of maxAge
  -otel.endpoint <addr>          OTLP collector endpoint
  -otel.service <name>           OpenTelemetry service name (default: gqlpaginate)
  -v                             Log every transform pass
`

const transformUsage = "transform FLAGS:\n" + commonFlags

const watchUsage = "watch FLAGS:\n" + commonFlags +
	`  -debounce <duration>           Quiet period before re-running, e.g. 200ms (default: 200ms)
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	global := flag.NewFlagSet("gqlpaginate", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "transform":
		return cmdTransform(ctx, cmdArgs, stdout)
	case "watch":
		return cmdWatch(ctx, cmdArgs, stdout)
	case "help":
		return cmdHelp(cmdArgs, stdout)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, rootUsage)
		return nil
	}
	switch args[0] {
	case "transform":
		fmt.Fprint(stdout, transformUsage)
	case "watch":
		fmt.Fprint(stdout, watchUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// settings holds the resolved flags and configuration of a command.
type settings struct {
	schema       stringListFlag
	out          string
	configPath   string
	directive    string
	cacheControl connection.CacheControl
	otelEndpoint string
	otelService  string
	verbose      bool
	debounce     time.Duration
}

func newFlagSet(name string, s *settings) *flag.FlagSet {
	s.cacheControl = connection.DefaultCacheControl()
	s.otelService = "gqlpaginate"
	s.debounce = 200 * time.Millisecond

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.Var(&s.schema, "schema", "Schema file or directory")
	fs.StringVar(&s.out, "out", s.out, "Write the result to file")
	fs.StringVar(&s.configPath, "config", s.configPath, "YAML configuration file")
	fs.StringVar(&s.directive, "directive", s.directive, "Marker directive name")
	fs.BoolVar(&s.cacheControl.Enabled, "cache-control", s.cacheControl.Enabled, "Propagate @cacheControl hints")
	fs.BoolVar(&s.cacheControl.InheritMaxAge, "cache-control.inherit", s.cacheControl.InheritMaxAge, "Emit inheritMaxAge hints")
	fs.StringVar(&s.otelEndpoint, "otel.endpoint", s.otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&s.otelService, "otel.service", s.otelService, "OpenTelemetry service name")
	fs.BoolVar(&s.verbose, "v", s.verbose, "Log every transform pass")
	if name == "watch" {
		fs.DurationVar(&s.debounce, "debounce", s.debounce, "Quiet period before re-running")
	}
	return fs
}

// resolve fills settings left unset on the command line from the config file.
func (s *settings) resolve(fs *flag.FlagSet) error {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if s.configPath != "" {
		cfg, err := config.Load(s.configPath)
		if err != nil {
			return err
		}
		if !set["schema"] {
			s.schema = stringListFlag(cfg.Schema)
		}
		if !set["out"] {
			s.out = cfg.Out
		}
		if !set["directive"] {
			s.directive = cfg.Directive
		}
		policy := cfg.CachePolicy()
		if !set["cache-control"] {
			s.cacheControl.Enabled = policy.Enabled
		}
		if !set["cache-control.inherit"] {
			s.cacheControl.InheritMaxAge = policy.InheritMaxAge
		}
	}
	if len(s.schema) == 0 {
		s.schema = stringListFlag{"."}
	}
	return nil
}

func parseSettings(name, usage string, args []string) (*settings, error) {
	s := &settings{}
	fs := newFlagSet(name, s)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, usage)
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprint(os.Stderr, usage)
		return nil, fmt.Errorf("unexpected arguments %v", fs.Args())
	}
	if err := s.resolve(fs); err != nil {
		return nil, err
	}
	return s, nil
}

// observe installs the event bus with the log and tracing subscribers the
// settings ask for.
func observe(s *settings) (func(context.Context) error, error) {
	bus := eventbus.New()
	eventbus.Use(bus)
	if s.verbose {
		logEvents(bus, log.Default())
	}
	shutdown, err := otel.Setup(bus, s.otelEndpoint, s.otelService)
	if err != nil {
		return nil, fmt.Errorf("otel setup: %w", err)
	}
	return func(ctx context.Context) error {
		eventbus.Use(nil)
		return shutdown(ctx)
	}, nil
}

func logEvents(bus *eventbus.Bus, logger *log.Logger) {
	prefix := func(ctx context.Context) string {
		rid, _ := runid.FromContext(ctx)
		return "[" + rid + "] "
	}
	eventbus.Subscribe(bus, func(ctx context.Context, e events.TransformStart) {
		logger.Printf("%stransform: %d sources, directive @%s", prefix(ctx), e.Sources, e.DirectiveName)
	})
	eventbus.Subscribe(bus, func(ctx context.Context, e events.TargetsScanned) {
		logger.Printf("%sscan: %d paginated types", prefix(ctx), e.Targets)
	})
	eventbus.Subscribe(bus, func(ctx context.Context, e events.TypesSynthesized) {
		logger.Printf("%ssynthesize: %d type definitions", prefix(ctx), e.Definitions)
	})
	eventbus.Subscribe(bus, func(ctx context.Context, e events.FieldsRewritten) {
		logger.Printf("%srewrite: %d fields", prefix(ctx), e.Fields)
	})
	eventbus.Subscribe(bus, func(ctx context.Context, e events.TransformFinish) {
		if e.Err != nil {
			logger.Printf("%sfailed after %s: %v", prefix(ctx), e.Duration, e.Err)
			return
		}
		logger.Printf("%sdone in %s", prefix(ctx), e.Duration)
	})
}

func cmdTransform(ctx context.Context, args []string, stdout io.Writer) error {
	s, err := parseSettings("transform", transformUsage, args)
	if err != nil {
		return err
	}
	shutdown, err := observe(s)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	return transformOnce(ctx, s, newDiscovery(s), stdout)
}

func newDiscovery(s *settings) *discovery.FileSystemDiscovery {
	return discovery.NewFileSystemDiscovery(s.schema...).Exclude(s.out)
}

func transformOnce(ctx context.Context, s *settings, disc discovery.Discovery, stdout io.Writer) error {
	sources, err := disc.Sources(ctx)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	cc := s.cacheControl
	sdl, err := connection.Transform(ctx, connection.Input{
		Sources:       sources,
		DirectiveName: s.directive,
		CacheControl:  &cc,
	})
	if err != nil {
		return err
	}
	if s.out == "" {
		_, err := io.WriteString(stdout, sdl)
		return err
	}
	return os.WriteFile(s.out, []byte(sdl), 0644)
}
