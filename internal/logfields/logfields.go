package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyPostKey    = "post_key"
	KeySlug       = "slug"
	KeyTag        = "tag"
	KeyYear       = "year"
	KeyTemplate   = "template"
	KeyCount      = "count"
	KeyWorkers    = "workers"
	KeyOutcome    = "outcome"
	KeyTrigger    = "trigger"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func PostKey(k string) slog.Attr       { return slog.String(KeyPostKey, k) }
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func Tag(t string) slog.Attr           { return slog.String(KeyTag, t) }
func Year(y string) slog.Attr          { return slog.String(KeyYear, y) }
func Template(name string) slog.Attr   { return slog.String(KeyTemplate, name) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Workers(n int) slog.Attr          { return slog.Int(KeyWorkers, n) }
func Outcome(o string) slog.Attr       { return slog.String(KeyOutcome, o) }
func Trigger(reason string) slog.Attr  { return slog.String(KeyTrigger, reason) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
