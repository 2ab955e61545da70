package clip

import (
	"context"
	"log/slog"
)

const previewLen = 120

// LogItems logs a clipboard event at INFO (backend, formats) and DEBUG (a
// text preview of each item up to 120 runes).
func LogItems(event, backend string, items []Item) {
	formats := make([]string, len(items))
	for i, it := range items {
		formats[i] = string(it.Format)
	}
	slog.Info(event, "backend", backend, "formats", formats)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for _, it := range items {
		slog.Debug("clipboard item",
			"format", it.Format,
			"size_bytes", len(it.Data),
			"preview", truncate(it.Text(), previewLen),
		)
	}
}
