package logging

import (
	"log/slog"
	"time"
)

const (
	// FieldComponent is the standardized key for component names.
	FieldComponent = "component"
	// FieldShowID is the standardized key for catalog show identifiers.
	FieldShowID = "show_id"
	// FieldShowName is the standardized key for show names.
	FieldShowName = "show"
	// FieldEpisodeCode is the standardized key for episode labels (e.g. S01E02).
	FieldEpisodeCode = "episode"
	// FieldCorrelationID is the standardized key for check-run correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
