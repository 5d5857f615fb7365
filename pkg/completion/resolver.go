package completion

import (
	"fmt"
	"regexp"
	"strings"

	"pathctx/pkg/spath"
)

// Mode tells where the completion request comes from
type Mode int

const (
	// BufferContext resolves relative paths against the provided base directory
	BufferContext Mode = iota
	// CommandContext resolves relative paths against the working directory
	CommandContext
)

func (m Mode) String() string {
	if m == CommandContext {
		return "command"
	}
	return "buffer"
}

// ParseMode maps "command"/"cmdline" to CommandContext, anything else to BufferContext
func ParseMode(s string) Mode {
	switch strings.ToLower(s) {
	case "command", "cmdline", "cmd":
		return CommandContext
	}
	return BufferContext
}

// ResolveOptions carries everything Resolve needs besides the cursor text
type ResolveOptions struct {
	Mode Mode
	// BaseDir is the directory relative fragments are resolved against in
	// BufferContext. When empty the working directory is used.
	BaseDir string
	Env     Env
	Rules   []DecorationRule
}

// ResolvedDirectory is the directory to list and how to decorate its entries
type ResolvedDirectory struct {
	Path                 string
	IncludeHidden        bool
	DecorateFirstSegment bool
	// Prefix is reinserted into candidates when DecorateFirstSegment is set
	Prefix string
}

var (
	// a token starting with a digit, or a ')', then optional spaces and a
	// separator with at most one more bare segment: "10 / 2", "(x) /", "3/"
	arithmeticRe = regexp.MustCompile(`(?:(?:^|\s)[0-9][^\s/]*|\))\s*/\s*[^\s/]*$`)

	envPrefixRe = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)`)
)

func notAPath(reason string) error {
	return fmt.Errorf("%w: %s", ErrNotAPath, reason)
}

// Resolve classifies the text before the cursor and returns the absolute
// directory whose entries complete it. Rejected fragments return an error
// matching ErrNotAPath. Resolve performs no filesystem I/O.
func Resolve(cc CursorContext, opts ResolveOptions) (ResolvedDirectory, error) {
	fragment := Fragment(cc.Line)
	if fragment == "" {
		return ResolvedDirectory{}, notAPath("empty fragment")
	}

	marker := NewMarkerState(fragment, opts.Rules)
	p := fragment
	if marker.HasMarker {
		p = fragment[len(marker.Prefix):]
	}

	if reason, rejected := reject(p, cc, fragment); rejected {
		return ResolvedDirectory{}, notAPath(reason)
	}

	scan, err := scanDir(p, opts)
	if err != nil {
		return ResolvedDirectory{}, err
	}

	return ResolvedDirectory{
		Path:                 spath.Canonical(scan),
		IncludeHidden:        cc.includeHidden(marker.Prefix),
		DecorateFirstSegment: marker.DecorateFirstSegment,
		Prefix:               marker.Prefix,
	}, nil
}

// reject applies the non-path heuristics in order
func reject(p string, cc CursorContext, fragment string) (string, bool) {
	if strings.Contains(p, "://") {
		return "url", true
	}
	if strings.HasSuffix(p, "</") {
		return "closing tag", true
	}
	before := cc.Line[:len(cc.Line)-len(fragment)]
	if arithmeticRe.MatchString(before + p) {
		return "arithmetic", true
	}
	if p != "" && strings.Trim(p, " \t/") == "" && SlashComment(cc.CommentString, cc.Filetype) {
		return "comment", true
	}
	return "", false
}

func baseDir(opts ResolveOptions) (string, error) {
	if opts.Mode == BufferContext && opts.BaseDir != "" {
		return opts.BaseDir, nil
	}
	if opts.Env == nil {
		return "", notAPath("no working directory")
	}
	wd, err := opts.Env.Getwd()
	if err != nil {
		return "", notAPath(fmt.Sprintf("working directory: %v", err))
	}
	return wd, nil
}

// scanDir maps p to the directory to list, prefixes are checked from the
// most specific to the generic fallbacks
func scanDir(p string, opts ResolveOptions) (string, error) {
	switch {
	case spath.IsAbs(p):
		dir := spath.DirPart(p)
		if dir == "" {
			return string(spath.Separator), nil
		}
		return dir, nil

	case strings.HasPrefix(p, "~/"):
		if opts.Env == nil {
			return "", notAPath("no home directory")
		}
		home, err := opts.Env.HomeDir()
		if err != nil {
			return "", notAPath(fmt.Sprintf("home directory: %v", err))
		}
		return home + "/" + spath.DirPart(p[2:]), nil

	case strings.HasPrefix(p, "../"):
		base, err := baseDir(opts)
		if err != nil {
			return "", err
		}
		dir := spath.DirPart(p)
		if dir == "" {
			dir = ".."
		}
		return base + "/" + dir, nil

	case strings.HasPrefix(p, "./"):
		base, err := baseDir(opts)
		if err != nil {
			return "", err
		}
		return base + "/" + spath.DirPart(p[2:]), nil

	case envPrefixRe.MatchString(p):
		m := envPrefixRe.FindStringSubmatch(p)
		var value string
		var ok bool
		if opts.Env != nil {
			value, ok = opts.Env.LookupEnv(m[1])
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUndefinedVariable, m[1])
		}
		return value + spath.DirPart(p[len(m[0]):]), nil

	case spath.HasSeparator(p):
		base, err := baseDir(opts)
		if err != nil {
			return "", err
		}
		return base + "/" + spath.DirPart(p), nil
	}

	// Bare word, left to the host's own filtering
	return baseDir(opts)
}
