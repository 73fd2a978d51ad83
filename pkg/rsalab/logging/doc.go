// Package logging provides the logging facade used across rsalab.
//
// Library code depends on the small Logger interface below instead of a
// concrete logger so callers can route output wherever they like, or silence
// it entirely with Discard.
//
//	type Logger interface {
//	    Debug(ctx context.Context, msg string, args ...any)
//	    Info(ctx context.Context, msg string, args ...any)
//	    Warn(ctx context.Context, msg string, args ...any)
//	    Error(ctx context.Context, msg string, args ...any)
//	    With(args ...any) Logger
//	}
//
// # Construction
//
// New wraps any *slog.Logger (nil binds to slog.Default()). NewFromSettings
// builds one from validated Settings: a text handler on stderr for the
// console type, or a JSON handler writing to a size-rotated file for the file
// type.
//
//	logger, err := logging.NewFromSettings(logging.Settings{
//	    Level: logging.LevelDebug,
//	    Type:  logging.TypeFile,
//	    FilePath:   "/var/log/rsalab/bench.log",
//	    MaxSize:    10,
//	    MaxBackups: 3,
//	    MaxAge:     28,
//	})
//
// # Secrets
//
// Private exponents and primes must not reach log output. Use Redacted to
// record that a value existed without printing it:
//
//	logger.Debug(ctx, "key pair ready", "bits", n.BitLen(), logging.Redacted("d"))
package logging
