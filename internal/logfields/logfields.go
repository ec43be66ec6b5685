package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyFile       = "file"
	KeyPolicy     = "policy"
	KeyURL        = "url"
	KeyCorrected  = "corrected_url"
	KeyStatus     = "status"
	KeyHTTPStatus = "http_status"
	KeySection    = "section"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr          { return slog.String(KeyRunID, id) }
func File(path string) slog.Attr         { return slog.String(KeyFile, path) }
func Policy(name string) slog.Attr       { return slog.String(KeyPolicy, name) }
func URL(u string) slog.Attr             { return slog.String(KeyURL, u) }
func CorrectedURL(u string) slog.Attr    { return slog.String(KeyCorrected, u) }
func Status(code int) slog.Attr          { return slog.Int(KeyStatus, code) }
func HTTPStatus(code int) slog.Attr      { return slog.Int(KeyHTTPStatus, code) }
func Section(title string) slog.Attr     { return slog.String(KeySection, title) }
func DurationMS(ms float64) slog.Attr    { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
