package conf

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// WithBlob merges a per-request JSON configuration blob on top of cfg.
// Only keys present in the blob override cfg, an empty blob is a no-op.
func WithBlob(cfg Config, blob string) (Config, error) {
	cfg = cfg.Clone()
	if blob == "" {
		return cfg, nil
	}
	if !gjson.Valid(blob) {
		return cfg, fmt.Errorf("invalid configuration blob")
	}

	if v := gjson.Get(blob, "trailing_slash"); v.Exists() {
		cfg.TrailingSlashOnInsert = v.Bool()
	}
	if v := gjson.Get(blob, "label_trailing_slash"); v.Exists() {
		cfg.LabelTrailingSlash = v.Bool()
	}
	if v := gjson.Get(blob, "base_directory"); v.Exists() {
		cfg.BaseDirectory = v.String()
	}
	if v := gjson.Get(blob, "preview_max_lines"); v.Exists() {
		cfg.PreviewMaxLines = int(v.Int())
	}
	if v := gjson.Get(blob, "markers"); v.Exists() {
		markers := make([]Marker, 0)
		for _, m := range v.Array() {
			scope := m.Get("scope").String()
			if scope == "" {
				scope = ScopeFirstSegment
			}
			markers = append(markers, Marker{
				Trigger: m.Get("trigger").String(),
				Scope:   scope,
			})
		}
		cfg.Markers = markers
	}
	return cfg, cfg.Validate()
}
