package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/natefinch/lumberjack"
)

// Log levels accepted by Settings.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Log output types accepted by Settings.
const (
	TypeConsole = "console"
	TypeFile    = "file"
)

// Settings selects the log level and destination. Rotation fields only apply
// to the file type.
type Settings struct {
	Level      string `json:"level" validate:"required,oneof=debug info warning error"`
	Type       string `json:"type" validate:"required,oneof=console file"`
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"`
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"`
}

// DefaultSettings logs info and above to stderr.
func DefaultSettings() Settings {
	return Settings{Level: LevelInfo, Type: TypeConsole}
}

// Validate checks the struct tags plus the file rotation bounds.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for logging settings: %w", err)
	}

	if s.Type == TypeFile {
		if s.FilePath == "" {
			return fmt.Errorf("file path is required for file logger")
		}
		if s.MaxSize < 1 || s.MaxSize > 100 {
			return fmt.Errorf("max size must be between 1 and 100 MB")
		}
		if s.MaxBackups < 1 || s.MaxBackups > 10 {
			return fmt.Errorf("max backups must be between 1 and 10")
		}
		if s.MaxAge < 1 || s.MaxAge > 365 {
			return fmt.Errorf("max age must be between 1 and 365 days")
		}
	}

	return nil
}

// NewFromSettings validates s and builds the matching Logger.
func NewFromSettings(s Settings) (Logger, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(s.Level)}

	switch s.Type {
	case TypeConsole:
		return New(slog.New(slog.NewTextHandler(os.Stderr, opts))), nil
	case TypeFile:
		return New(slog.New(slog.NewJSONHandler(newRotatingWriter(s), opts))), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", s.Type)
	}
}

func newRotatingWriter(s Settings) io.Writer {
	return &lumberjack.Logger{
		Filename:   s.FilePath,
		MaxSize:    s.MaxSize,
		MaxBackups: s.MaxBackups,
		MaxAge:     s.MaxAge,
		Compress:   true,
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarning:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
