package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the slog handler New builds.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Environment names understood by WithEnvironment. "prod" and "stage" are
// accepted as aliases.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

type settings struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

// Option mutates logger settings before New builds the handler.
type Option func(*settings)

// New returns a logger writing JSON at info level to stdout unless options
// say otherwise. Context extractors run on every record.
func New(opts ...Option) *slog.Logger {
	s := &settings{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	handlerOpts := &slog.HandlerOptions{Level: s.level}

	var h slog.Handler
	switch s.format {
	case FormatText:
		h = slog.NewTextHandler(s.output, handlerOpts)
	default:
		h = slog.NewJSONHandler(s.output, handlerOpts)
	}
	if len(s.attrs) > 0 {
		h = h.WithAttrs(s.attrs)
	}

	return slog.New(NewContextHandler(h, s.extractors...))
}

// SetAsDefault installs l as the slog default logger.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithFormat panics on anything but FormatJSON or FormatText. Logger setup
// happens at startup, where a bad value should stop the process.
func WithFormat(f Format) Option {
	if f != FormatJSON && f != FormatText {
		panic(fmt.Errorf("logger: unknown format %q", f))
	}
	return func(s *settings) { s.format = f }
}

func WithTextFormatter() Option { return WithFormat(FormatText) }

func WithJSONFormatter() Option { return WithFormat(FormatJSON) }

// WithOutput redirects log output. A nil writer is ignored.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(s *settings) { s.attrs = append(s.attrs, attrs...) }
}

// WithContextExtractors registers extractors that run on every record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) { s.extractors = append(s.extractors, extractors...) }
}

type preset struct {
	env    string
	level  slog.Level
	format Format
}

var (
	development = preset{env: EnvDevelopment, level: slog.LevelDebug, format: FormatText}
	staging     = preset{env: EnvStaging, level: slog.LevelInfo, format: FormatJSON}
	production  = preset{env: EnvProduction, level: slog.LevelInfo, format: FormatJSON}
)

func (p preset) option(service string) Option {
	return func(s *settings) {
		if service == "" {
			return
		}
		s.level = p.level
		s.format = p.format
		s.attrs = append(s.attrs,
			slog.String("service", service),
			slog.String("env", p.env),
		)
	}
}

// WithDevelopment logs text at debug level, tagged with service and env.
func WithDevelopment(service string) Option { return development.option(service) }

// WithStaging logs JSON at info level, tagged with service and env.
func WithStaging(service string) Option { return staging.option(service) }

// WithProduction logs JSON at info level, tagged with service and env.
func WithProduction(service string) Option { return production.option(service) }

// WithEnvironment picks a preset by name. Unknown names fall back to
// development. An empty service leaves the settings untouched.
func WithEnvironment(env, service string) Option {
	switch env {
	case EnvProduction, "prod":
		return WithProduction(service)
	case EnvStaging, "stage":
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}
