package wirecodec

// Logger receives diagnostic messages from encode and decode calls.
// *slog.Logger satisfies it, as does any zap/logrus adapter with the same shape.
// The codec only emits Debug messages: failed top-level encodes and decodes,
// and trailing bytes ignored by a lenient decode.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	Debug(msg string, keysAndValues ...any)
}

type noopLogger struct{}

func (noopLogger) Info(_ string, _ ...any)  {}
func (noopLogger) Warn(_ string, _ ...any)  {}
func (noopLogger) Error(_ string, _ ...any) {}
func (noopLogger) Debug(_ string, _ ...any) {}
