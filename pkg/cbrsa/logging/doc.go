// Package logging provides a minimal logging facade for cb-rsa-go.
//
// The Logger interface is context-aware and deliberately small:
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Backends
//
//	// log/slog, nil binds to slog.Default()
//	logger := logging.New(nil)
//
//	// go.uber.org/zap
//	zl, _ := zap.NewProduction()
//	logger := logging.NewZap(zl)
//
//	// discard everything
//	logger := logging.Nop()
//
// # Redaction
//
// Key generation handles primes, the totient and the private exponent. None of
// them may reach a log sink. Use Redacted to record that a value was
// intentionally left out:
//
//	logger.Debug(ctx, "private exponent derived", logging.Redacted("d"))
//	// d=[redacted]
package logging
