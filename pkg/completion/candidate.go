package completion

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"pathctx/pkg/conf"
	"pathctx/pkg/spath"
)

// Kind is the completion item kind reported to the host
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	if k == KindFolder {
		return "folder"
	}
	return "file"
}

// EntryType is the filesystem type of a candidate
type EntryType string

const (
	TypeFile      EntryType = "file"
	TypeDirectory EntryType = "directory"
	TypeLink      EntryType = "link"
	TypeOther     EntryType = "other"
)

// Metadata is kept for the preview step
type Metadata struct {
	Path string
	Type EntryType
	// Stat describes the link target, nil for broken links
	Stat fs.FileInfo
	// LinkStat is only set for broken links
	LinkStat fs.FileInfo
}

// Candidate is a single completion item
type Candidate struct {
	Label      string
	FilterText string
	InsertText string
	// WordOverride is the insertable form without the trailing separator,
	// only set for directories when trailing slashes are not inserted
	WordOverride  string
	Kind          Kind
	Meta          Metadata
	Documentation string
}

// Previewable reports whether a preview can be built for the candidate
func (c Candidate) Previewable() bool {
	return c.Meta.Type == TypeFile
}

func (c *Candidate) decorate(prefix string) {
	c.Label = prefix + c.Label
	c.FilterText = prefix + c.FilterText
	c.InsertText = prefix + c.InsertText
	if c.WordOverride != "" {
		c.WordOverride = prefix + c.WordOverride
	}
}

type entryStatus int

const (
	entryResolved entryStatus = iota
	entryBrokenLink
	entryUnreadable
)

// statEntry follows the entry, falling back to the link itself so that
// broken links are told apart from unreadable entries
func statEntry(fsys FS, abs string) (entryStatus, fs.FileInfo) {
	info, err := fsys.Stat(abs)
	if err == nil {
		return entryResolved, info
	}
	linfo, lErr := fsys.Lstat(abs)
	if lErr == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		return entryBrokenLink, linfo
	}
	return entryUnreadable, nil
}

func entryType(info fs.FileInfo) EntryType {
	switch {
	case info.IsDir():
		return TypeDirectory
	case info.Mode().IsRegular():
		return TypeFile
	}
	return TypeOther
}

func newCandidate(name string, meta Metadata, cfg conf.Config) Candidate {
	c := Candidate{
		Label:      name,
		FilterText: name,
		InsertText: name,
		Kind:       KindFile,
		Meta:       meta,
	}
	if meta.Type == TypeDirectory {
		c.Kind = KindFolder
		c.InsertText += string(spath.Separator)
		if cfg.LabelTrailingSlash {
			c.Label += string(spath.Separator)
		}
		if !cfg.TrailingSlashOnInsert {
			c.WordOverride = name
		}
	}
	return c
}

// ListCandidates lists dir and builds one candidate per visible entry, in
// listing order. A missing or unreadable directory returns
// ErrDirectoryUnreadable. A cancelled ctx stops the scan with ctx.Err().
func ListCandidates(ctx context.Context, fsys FS, dir ResolvedDirectory, cfg conf.Config) ([]Candidate, error) {
	entries, err := fsys.ReadDir(dir.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryUnreadable, dir.Path, err)
	}

	candidates := make([]Candidate, 0, len(entries))
	for _, entry := range entries {
		if cErr := ctx.Err(); cErr != nil {
			return nil, cErr
		}
		if strings.HasPrefix(entry.Name, ".") && !dir.IncludeHidden {
			continue
		}

		abs := spath.Join(dir.Path, entry.Name)
		var c Candidate
		switch status, info := statEntry(fsys, abs); status {
		case entryResolved:
			c = newCandidate(entry.Name, Metadata{Path: abs, Type: entryType(info), Stat: info}, cfg)
		case entryBrokenLink:
			c = newCandidate(entry.Name, Metadata{Path: abs, Type: TypeLink, LinkStat: info}, cfg)
		case entryUnreadable:
			continue
		}

		if dir.DecorateFirstSegment {
			c.decorate(dir.Prefix)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}
