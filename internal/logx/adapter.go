package logx

import "log/slog"

// slogAdapter backs the Logger facade with a *slog.Logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a Logger writing through the provided slog.Logger.
func NewSlogAdapter(l *slog.Logger) Logger {
	return slogAdapter{l: l}
}

func (a slogAdapter) Debug(msg string, fields ...Field) { a.l.Debug(msg, slogArgs(fields)...) }
func (a slogAdapter) Info(msg string, fields ...Field)  { a.l.Info(msg, slogArgs(fields)...) }
func (a slogAdapter) Warn(msg string, fields ...Field)  { a.l.Warn(msg, slogArgs(fields)...) }
func (a slogAdapter) Error(msg string, fields ...Field) { a.l.Error(msg, slogArgs(fields)...) }

// With attaches fields to every entry of the returned logger.
func (a slogAdapter) With(fields ...Field) Logger {
	return slogAdapter{l: a.l.With(slogArgs(fields)...)}
}

func slogArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}
