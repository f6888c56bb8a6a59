package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithComponent(component string) Logger
}

type Opts struct {
	Env       string
	SentryDSN string
	// Writer defaults to stdout.
	Writer io.Writer
}

type Impl struct {
	*slog.Logger
}

var _ Logger = (*Impl)(nil)

func New(opts Opts) *Impl {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	level := slog.LevelDebug
	var zl zerolog.Logger
	switch opts.Env {
	case "production":
		level = slog.LevelInfo
		zl = zerolog.New(w).With().Timestamp().Logger()
	case "test":
		zl = zerolog.New(w)
	default:
		zl = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err == nil {
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		} else {
			fmt.Fprintf(w, "sentry init failed: %v\n", err)
		}
	}

	return &Impl{Logger: slog.New(slogmulti.Fanout(handlers...))}
}

// Nop returns a logger that discards everything.
func Nop() *Impl {
	return New(Opts{Env: "test", Writer: io.Discard})
}

func (l *Impl) WithComponent(component string) Logger {
	return &Impl{Logger: l.Logger.With("component", component)}
}

// Printf lets fx use the logger for its own output.
func (l *Impl) Printf(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}
