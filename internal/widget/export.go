package widget

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Export is the JSON form of a widget.
type Export struct {
	Timestamp    time.Time `json:"timestamp"`
	Phase        float64   `json:"phase"`
	Stage        string    `json:"stage"`
	Glyph        string    `json:"glyph"`
	Illumination float64   `json:"illumination"`
	Percent      int       `json:"percent"`
	AgeDays      float64   `json:"age_days"`
	Waxing       bool      `json:"waxing"`
	Hemisphere   string    `json:"hemisphere"`
	Path         string    `json:"path"`
	Rx           float64   `json:"rx"`
	Sweep        int       `json:"sweep"`
	Mirrored     bool      `json:"mirrored"`
	Tooltip      string    `json:"tooltip"`
	NextFullMoon time.Time `json:"next_full_moon"`
	NextNewMoon  time.Time `json:"next_new_moon"`
	Visible      *bool     `json:"visible,omitempty"`
}

// ExportWidget converts a widget to its exportable form.
func ExportWidget(w Widget) *Export {
	return &Export{
		Timestamp:    w.Time.UTC(),
		Phase:        w.Moon.Phase,
		Stage:        w.Moon.Stage.String(),
		Glyph:        w.Moon.Stage.Glyph(),
		Illumination: w.Moon.Illumination,
		Percent:      w.Percent(),
		AgeDays:      w.Moon.AgeDays,
		Waxing:       w.Moon.Waxing,
		Hemisphere:   w.Hemisphere.String(),
		Path:         w.Silhouette.Path(),
		Rx:           w.Silhouette.Rx,
		Sweep:        w.Silhouette.Sweep,
		Mirrored:     w.Silhouette.Mirrored,
		Tooltip:      w.Tooltip(),
		NextFullMoon: w.NextFull,
		NextNewMoon:  w.NextNew,
	}
}

// WithRoute records whether the widget shows on path.
func (e *Export) WithRoute(path string) *Export {
	v := Visible(path)
	e.Visible = &v
	return e
}

// WriteJSON writes the export as indented JSON.
func (e *Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteText writes a short human-readable block.
func (e *Export) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"%s %s\nIllumination: %d%%\nAge:          %.1f days\nHemisphere:   %s\nNext full:    %s\nNext new:     %s\n",
		e.Glyph, e.Stage, e.Percent, e.AgeDays, e.Hemisphere,
		e.NextFullMoon.Format(time.RFC3339), e.NextNewMoon.Format(time.RFC3339))
	return err
}
