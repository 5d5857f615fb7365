package completion

import (
	"context"
	"errors"
	"path/filepath"

	"pathctx/pkg/conf"
	"pathctx/pkg/slog"
)

// Request is a single completion request coming from the host
type Request struct {
	ID        string
	BufferID  string
	Context   CursorContext
	Mode      Mode
	BufferDir string
	// Config is the merged configuration for this request
	Config conf.Config
}

// BaseDirProvider returns the directory relative fragments are resolved against
type BaseDirProvider func(Request) string

// BaseDirFor returns the provider selected by cfg.BaseDirectory
func BaseDirFor(cfg conf.Config, env Env) BaseDirProvider {
	switch cfg.BaseDirectory {
	case conf.BaseDirBuffer:
		return func(req Request) string {
			if req.BufferDir != "" {
				return filepath.ToSlash(req.BufferDir)
			}
			return getwd(env)
		}
	case conf.BaseDirCwd:
		return func(Request) string {
			return getwd(env)
		}
	}
	dir := filepath.ToSlash(cfg.BaseDirectory)
	return func(Request) string {
		return dir
	}
}

func getwd(env Env) string {
	if env == nil {
		return ""
	}
	wd, err := env.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Source ties the resolver, the candidate builder and the preview builder
// to one filesystem
type Source struct {
	FS     FS
	Env    Env
	Logger *slog.Logger
}

// NewSource creates a Source, a nil logger discards everything
func NewSource(fsys FS, env Env, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.NewNopLogger()
	}
	return &Source{
		FS:     fsys,
		Env:    env,
		Logger: logger,
	}
}

// TriggerCharacters returns the characters that should invoke the source
func (s *Source) TriggerCharacters() []string {
	return []string{"/", string(hiddenTrigger)}
}

// Complete resolves the request and lists its candidates. Fragments that are
// not paths and unreadable directories yield an empty list, only a cancelled
// ctx returns an error.
func (s *Source) Complete(ctx context.Context, req Request) ([]Candidate, error) {
	opts := ResolveOptions{
		Mode:    req.Mode,
		BaseDir: BaseDirFor(req.Config, s.Env)(req),
		Env:     s.Env,
		Rules:   RulesFromConfig(req.Config.Markers),
	}

	dir, err := Resolve(req.Context, opts)
	if err != nil {
		s.Logger.DebugWith("Not a path",
			slog.F("request", req.ID),
			slog.F("line", req.Context.Line),
			slog.F("reason", err))
		return []Candidate{}, nil
	}
	s.Logger.DebugWith("Resolved scan directory",
		slog.F("request", req.ID),
		slog.F("dir", dir.Path),
		slog.F("hidden", dir.IncludeHidden),
		slog.F("decorate", dir.DecorateFirstSegment))

	candidates, err := ListCandidates(ctx, s.FS, dir, req.Config)
	if err != nil {
		if errors.Is(err, ErrDirectoryUnreadable) {
			s.Logger.DebugWith("Scan directory unreadable",
				slog.F("request", req.ID),
				slog.F("err", err))
			return []Candidate{}, nil
		}
		return nil, err
	}
	return candidates, nil
}

// ResolveItem fills the candidate documentation with a file preview.
// Candidates that are not regular files, or whose preview fails, are
// returned unchanged.
func (s *Source) ResolveItem(c Candidate, maxLines int) Candidate {
	if !c.Previewable() || c.Documentation != "" {
		return c
	}
	doc, err := Preview(s.FS, c.Meta.Path, maxLines)
	if err != nil {
		s.Logger.DebugWith("Preview failed",
			slog.F("path", c.Meta.Path),
			slog.F("err", err))
		return c
	}
	c.Documentation = doc
	return c
}
