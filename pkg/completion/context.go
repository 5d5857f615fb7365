package completion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pathctx/pkg/conf"
	"pathctx/pkg/spath"
)

// KeywordPattern is the pattern hosts should use to find the word being
// filtered. It excludes whitespace, quotes and the separator so each path
// segment is filtered on its own.
const KeywordPattern = `[^\s/'"` + "`" + `]*`

// hiddenTrigger at the start of the keyword makes hidden entries visible
const hiddenTrigger = '.'

// CursorContext is the text of the current line up to the cursor
type CursorContext struct {
	// Line holds the text before the cursor
	Line string
	// Offset is the 1-based column where the keyword being typed starts, as
	// reported by the host. Zero means it is derived from Line.
	Offset int
	// CommentString and Filetype describe the surrounding buffer, they are
	// only used to tell slash-style comments apart from paths
	CommentString string
	Filetype      string
}

func isFragmentBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '\'' || r == '"' || r == '`'
}

// Fragment returns the word being typed: the tail of line after the last
// whitespace or quote character
func Fragment(line string) string {
	i := strings.LastIndexFunc(line, isFragmentBoundary)
	if i < 0 {
		return line
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return line[i+size:]
}

// KeywordOffset returns the 1-based column where the keyword at the end of
// line starts, as a host matching KeywordPattern would report it
func KeywordOffset(line string) int {
	i := strings.LastIndexFunc(line, func(r rune) bool {
		return isFragmentBoundary(r) || r == spath.Separator
	})
	if i < 0 {
		return 1
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return i + size + 1
}

func (cc CursorContext) offset() int {
	if cc.Offset > 0 {
		return cc.Offset
	}
	return KeywordOffset(cc.Line)
}

// includeHidden reports whether the keyword starts with the hidden trigger.
// A marker in front of the keyword is skipped: "@.en" shows hidden entries.
func (cc CursorContext) includeHidden(marker string) bool {
	o := cc.offset()
	if o < 1 || o > len(cc.Line) {
		return false
	}
	keyword := strings.TrimPrefix(cc.Line[o-1:], marker)
	return len(keyword) > 0 && keyword[0] == hiddenTrigger
}

// SlashComment reports whether the buffer uses slash-style comments
func SlashComment(commentString, filetype string) bool {
	if filetype == "" {
		return false
	}
	return strings.Contains(commentString, "/*") || strings.Contains(commentString, "//")
}

// Scope tells where a stripped marker is put back
type Scope int

const (
	// ReinsertFirstSegment decorates candidates only while the first path
	// segment after the marker is being completed
	ReinsertFirstSegment Scope = iota
	// ReinsertNever strips the marker for resolution only
	ReinsertNever
)

// DecorationRule maps a leading trigger character to its reinsertion scope
type DecorationRule struct {
	Trigger rune
	Scope   Scope
}

// DefaultRules holds the '@' marker
var DefaultRules = []DecorationRule{{Trigger: '@', Scope: ReinsertFirstSegment}}

// RulesFromConfig converts configured markers, invalid ones are skipped
func RulesFromConfig(markers []conf.Marker) []DecorationRule {
	rules := make([]DecorationRule, 0, len(markers))
	for _, m := range markers {
		r, size := utf8.DecodeRuneInString(m.Trigger)
		if r == utf8.RuneError || size != len(m.Trigger) {
			continue
		}
		scope := ReinsertFirstSegment
		if m.Scope == conf.ScopeNone {
			scope = ReinsertNever
		}
		rules = append(rules, DecorationRule{Trigger: r, Scope: scope})
	}
	return rules
}

// MarkerState describes the marker found at the start of a fragment.
// DecorateFirstSegment implies HasMarker.
type MarkerState struct {
	HasMarker            bool
	DecorateFirstSegment bool
	// Prefix is the marker text as typed
	Prefix string
}

// NewMarkerState matches fragment against rules, the first matching rule wins
func NewMarkerState(fragment string, rules []DecorationRule) MarkerState {
	for _, rule := range rules {
		prefix := string(rule.Trigger)
		if !strings.HasPrefix(fragment, prefix) {
			continue
		}
		return MarkerState{
			HasMarker: true,
			DecorateFirstSegment: rule.Scope == ReinsertFirstSegment &&
				!spath.HasSeparator(fragment[len(prefix):]),
			Prefix: prefix,
		}
	}
	return MarkerState{}
}
