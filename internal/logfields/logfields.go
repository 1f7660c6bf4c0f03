package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyArticle    = "article"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyScript     = "script"
	KeyURL        = "url"
	KeyStatus     = "status"
	KeyCount      = "count"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func Article(id string) slog.Attr      { return slog.String(KeyArticle, id) }
func Page(path string) slog.Attr       { return slog.String(KeyPage, path) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(name string) slog.Attr       { return slog.String(KeyFile, name) }
func Script(name string) slog.Attr     { return slog.String(KeyScript, name) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
