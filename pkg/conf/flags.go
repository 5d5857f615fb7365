package conf

import (
	"fmt"

	"github.com/spf13/pflag"
)

const (
	flagTrailingSlash      = "trailing-slash"
	flagLabelTrailingSlash = "label-trailing-slash"
	flagBaseDirectory      = "base-directory"
	flagPreviewMaxLines    = "preview-max-lines"
)

// RegisterFlags adds the configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Bool(flagTrailingSlash, d.TrailingSlashOnInsert, "Insert a trailing slash after completed directories")
	fs.Bool(flagLabelTrailingSlash, d.LabelTrailingSlash, "Show a trailing slash on directory labels")
	fs.String(flagBaseDirectory, d.BaseDirectory, "Relative paths base [buffer|cwd|<absolute path>]")
	fs.Int(flagPreviewMaxLines, d.PreviewMaxLines, "Maximum lines kept in a file preview")
}

// ApplyFlags overrides cfg with the flags explicitly set in fs.
// The FlagSet must already be parsed.
func ApplyFlags(cfg Config, fs *pflag.FlagSet) (Config, error) {
	cfg = cfg.Clone()
	var err error
	if fs.Changed(flagTrailingSlash) {
		if cfg.TrailingSlashOnInsert, err = fs.GetBool(flagTrailingSlash); err != nil {
			return cfg, fmt.Errorf("flag %s: %w", flagTrailingSlash, err)
		}
	}
	if fs.Changed(flagLabelTrailingSlash) {
		if cfg.LabelTrailingSlash, err = fs.GetBool(flagLabelTrailingSlash); err != nil {
			return cfg, fmt.Errorf("flag %s: %w", flagLabelTrailingSlash, err)
		}
	}
	if fs.Changed(flagBaseDirectory) {
		if cfg.BaseDirectory, err = fs.GetString(flagBaseDirectory); err != nil {
			return cfg, fmt.Errorf("flag %s: %w", flagBaseDirectory, err)
		}
	}
	if fs.Changed(flagPreviewMaxLines) {
		if cfg.PreviewMaxLines, err = fs.GetInt(flagPreviewMaxLines); err != nil {
			return cfg, fmt.Errorf("flag %s: %w", flagPreviewMaxLines, err)
		}
	}
	return cfg, cfg.Validate()
}
