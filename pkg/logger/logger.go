package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console
	Output string // stdout, stderr, or file path
}

func New(cfg *Config) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer
	switch cfg.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file: %w", err)
		}
		output = file
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zl := zerolog.New(output).
		With().
		Timestamp().
		Logger()

	return &Logger{zl: zl}, nil
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func (l *Logger) Debug(msg string, fields ...Field) { l.emit(l.zl.Debug(), msg, fields) }
func (l *Logger) Info(msg string, fields ...Field)  { l.emit(l.zl.Info(), msg, fields) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.emit(l.zl.Warn(), msg, fields) }
func (l *Logger) Error(msg string, fields ...Field) { l.emit(l.zl.Error(), msg, fields) }

func (l *Logger) emit(event *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		f.AddTo(event)
	}
	event.Msg(msg)
}

// Field adds one structured key/value to a log event.
type Field interface {
	AddTo(event *zerolog.Event)
}

type stringField struct {
	key, value string
}

func (f stringField) AddTo(event *zerolog.Event) { event.Str(f.key, f.value) }

type intField struct {
	key   string
	value int
}

func (f intField) AddTo(event *zerolog.Event) { event.Int(f.key, f.value) }

type float64Field struct {
	key   string
	value float64
}

func (f float64Field) AddTo(event *zerolog.Event) { event.Float64(f.key, f.value) }

type errorField struct {
	value error
}

func (f errorField) AddTo(event *zerolog.Event) { event.Err(f.value) }

type durationField struct {
	key   string
	value time.Duration
}

func (f durationField) AddTo(event *zerolog.Event) { event.Dur(f.key, f.value) }

type anyField struct {
	key   string
	value interface{}
}

func (f anyField) AddTo(event *zerolog.Event) { event.Interface(f.key, f.value) }

func String(key, value string) Field             { return stringField{key, value} }
func Int(key string, value int) Field            { return intField{key, value} }
func Float64(key string, value float64) Field    { return float64Field{key, value} }
func Error(err error) Field                      { return errorField{err} }
func Duration(key string, v time.Duration) Field { return durationField{key, v} }
func Any(key string, value interface{}) Field    { return anyField{key, value} }
