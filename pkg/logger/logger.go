// Package logger provides a zerolog-backed structured logger whose fields
// travel on the request context.
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/omarkhalil/framecraft-backend/pkg/env"
)

// Options configures the structured logger.
type Options struct {
	ServiceName string
	Level       zerolog.Level
	WarnStack   bool
	Output      io.Writer
}

type Logger struct {
	base      *zerolog.Logger
	warnStack bool
}

type loggerKey struct{}

// New builds the root logger. LOG_FORMAT=console switches to human-readable
// output for local work; everything else emits JSON.
func New(opts Options) *Logger {
	if opts.Level == zerolog.NoLevel {
		opts.Level = zerolog.InfoLevel
	}

	var out io.Writer = opts.Output
	if out == nil {
		out = os.Stdout
	}
	if env.Get("LOG_FORMAT", "json") == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    false,
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	root := zerolog.
		New(out).
		With().
		Timestamp().
		Str("service", opts.ServiceName).
		Logger().
		Level(opts.Level)

	return &Logger{base: &root, warnStack: opts.WarnStack}
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(value string) zerolog.Level {
	name := strings.ToLower(strings.TrimSpace(value))
	if name == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(name); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}

func (l *Logger) from(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return l.base
	}
	if entry, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok {
		return entry
	}
	return l.base
}

func (l *Logger) stash(ctx context.Context, entry zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, &entry)
}

// WithField returns a context whose logger carries the extra field.
func (l *Logger) WithField(ctx context.Context, key string, value any) context.Context {
	return l.stash(ctx, l.from(ctx).With().Interface(key, value).Logger())
}

// WithFields returns a context whose logger carries all the extra fields.
func (l *Logger) WithFields(ctx context.Context, fields map[string]any) context.Context {
	builder := l.from(ctx).With()
	for k, v := range fields {
		builder = builder.Interface(k, v)
	}
	return l.stash(ctx, builder.Logger())
}

func (l *Logger) WithRequestID(ctx context.Context, requestID string) context.Context {
	return l.WithField(ctx, "request_id", requestID)
}

func (l *Logger) WithUserID(ctx context.Context, userID string) context.Context {
	return l.WithField(ctx, "user_id", userID)
}

func (l *Logger) WithTenantID(ctx context.Context, tenantID string) context.Context {
	return l.WithField(ctx, "tenant_id", tenantID)
}

func (l *Logger) WithOrderSerial(ctx context.Context, serial string) context.Context {
	return l.WithField(ctx, "order_serial", serial)
}

func (l *Logger) Info(ctx context.Context, msg string) {
	l.from(ctx).Info().Msg(msg)
}

func (l *Logger) Warn(ctx context.Context, msg string) {
	event := l.from(ctx).Warn()
	if l.warnStack {
		event = event.Str("stack", stackTrace())
	}
	event.Msg(msg)
}

func (l *Logger) Error(ctx context.Context, msg string, err error) {
	event := l.from(ctx).Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Str("stack", stackTrace()).Msg(msg)
}

func stackTrace() string {
	return strings.TrimSpace(string(debug.Stack()))
}
