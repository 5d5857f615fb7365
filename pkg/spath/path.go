// Package spath provides the separator-level helpers used to split path
// fragments. Completion paths are always slash separated, regardless of the
// runtime OS, since remote (SFTP) paths use the same form. Windows paths keep
// their drive letter as a volume prefix: "C:/Users".
package spath

import (
	"path"
	"strings"
)

// Separator is the only path separator recognized in fragments
const Separator = '/'

// VolumeName returns the drive letter prefix of p ("C:"), or an empty string
func VolumeName(p string) string {
	if len(p) < 2 || p[1] != ':' {
		return ""
	}
	if c := p[0]; ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
		return p[:2]
	}
	return ""
}

// IsAbs reports whether the path is rooted, either at "/" or at a volume
// root such as "C:/"
func IsAbs(p string) bool {
	if vol := VolumeName(p); vol != "" {
		p = p[len(vol):]
	}
	return len(p) > 0 && p[0] == Separator
}

// HasSeparator reports whether p contains at least one separator
func HasSeparator(p string) bool {
	return strings.IndexByte(p, Separator) >= 0
}

// LastSeparator returns the index of the final separator in p, or -1
func LastSeparator(p string) int {
	return strings.LastIndexByte(p, Separator)
}

// DirPart returns everything before the final separator of p, or an empty
// string when p has no separator. Unlike path.Dir it does not clean the result.
func DirPart(p string) string {
	i := LastSeparator(p)
	if i < 0 {
		return ""
	}
	return p[:i]
}

// Join joins path elements, skipping empty ones, and cleans the result
func Join(elem ...string) string {
	return path.Join(elem...)
}

// Canonical returns the cleaned absolute form of p. Relative paths are
// anchored at the root, or at the volume root when p carries a drive letter,
// so the result is always absolute.
func Canonical(p string) string {
	if vol := VolumeName(p); vol != "" {
		return vol + Canonical(p[len(vol):])
	}
	if !IsAbs(p) {
		p = string(Separator) + p
	}
	return path.Clean(p)
}
