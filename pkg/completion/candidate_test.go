package completion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathctx/pkg/conf"
)

// textOf strips metadata so candidates compare on their text fields
func textOf(candidates []Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		c.Meta = Metadata{}
		out[i] = c
	}
	return out
}

func TestListCandidatesScenario(t *testing.T) {
	fsys := memFS{
		"/repo":           memDir(),
		"/repo/src":       memDir(),
		"/repo/src/a.txt": memFile("hello"),
		"/repo/src/.git":  memDir(),
	}

	resolved, err := Resolve(CursorContext{Line: "./src/"}, bufferOpts("/repo"))
	require.NoError(t, err)

	candidates, err := ListCandidates(context.Background(), fsys, resolved, conf.Default())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a.txt", candidates[0].Label)
	assert.Equal(t, KindFile, candidates[0].Kind)
	assert.Equal(t, "/repo/src/a.txt", candidates[0].Meta.Path)
	assert.Equal(t, TypeFile, candidates[0].Meta.Type)
	assert.True(t, candidates[0].Previewable())
}

func TestListCandidatesMarkerDecoration(t *testing.T) {
	fsys := memFS{
		"/repo":           memDir(),
		"/repo/links":     memDir(),
		"/repo/links/git": memDir(),
		"/repo/notes.md":  memFile("# notes"),
	}
	cfg := conf.Default()

	t.Run("First segment is decorated", func(t *testing.T) {
		resolved, err := Resolve(CursorContext{Line: "@lin"}, bufferOpts("/repo"))
		require.NoError(t, err)
		candidates, err := ListCandidates(context.Background(), fsys, resolved, cfg)
		require.NoError(t, err)

		expected := []Candidate{
			{Label: "@links/", FilterText: "@links", InsertText: "@links/", WordOverride: "@links", Kind: KindFolder},
			{Label: "@notes.md", FilterText: "@notes.md", InsertText: "@notes.md", Kind: KindFile},
		}
		if diff := cmp.Diff(expected, textOf(candidates)); diff != "" {
			t.Errorf("candidates mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Nested segment is plain", func(t *testing.T) {
		resolved, err := Resolve(CursorContext{Line: "@links/"}, bufferOpts("/repo"))
		require.NoError(t, err)
		candidates, err := ListCandidates(context.Background(), fsys, resolved, cfg)
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "git/", candidates[0].Label)
		assert.Equal(t, "git/", candidates[0].InsertText)
		assert.Equal(t, "/repo/links/git", candidates[0].Meta.Path)
	})
}

func TestListCandidatesTrailingSlashOptions(t *testing.T) {
	fsys := memFS{
		"/d":     memDir(),
		"/d/sub": memDir(),
	}
	resolved := ResolvedDirectory{Path: "/d"}

	testCases := []struct {
		name     string
		insert   bool
		label    bool
		expected Candidate
	}{
		{
			name:     "Defaults",
			insert:   false,
			label:    true,
			expected: Candidate{Label: "sub/", FilterText: "sub", InsertText: "sub/", WordOverride: "sub", Kind: KindFolder},
		},
		{
			name:     "Trailing slash on insert",
			insert:   true,
			label:    true,
			expected: Candidate{Label: "sub/", FilterText: "sub", InsertText: "sub/", Kind: KindFolder},
		},
		{
			name:     "Plain label",
			insert:   false,
			label:    false,
			expected: Candidate{Label: "sub", FilterText: "sub", InsertText: "sub/", WordOverride: "sub", Kind: KindFolder},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := conf.Default()
			cfg.TrailingSlashOnInsert = tc.insert
			cfg.LabelTrailingSlash = tc.label

			candidates, err := ListCandidates(context.Background(), fsys, resolved, cfg)
			require.NoError(t, err)
			if diff := cmp.Diff([]Candidate{tc.expected}, textOf(candidates)); diff != "" {
				t.Errorf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListCandidatesHiddenEntries(t *testing.T) {
	fsys := memFS{
		"/p":        memDir(),
		"/p/.env":   memFile("A=1"),
		"/p/readme": memFile("read me"),
	}

	for _, hidden := range []bool{false, true} {
		candidates, err := ListCandidates(context.Background(), fsys, ResolvedDirectory{Path: "/p", IncludeHidden: hidden}, conf.Default())
		require.NoError(t, err)

		var labels []string
		for _, c := range candidates {
			labels = append(labels, c.Label)
		}
		assert.Contains(t, labels, "readme")
		if hidden {
			assert.Contains(t, labels, ".env")
		} else {
			assert.NotContains(t, labels, ".env")
		}
	}
}

func TestListCandidatesEntryStatus(t *testing.T) {
	fsys := memFS{
		"/p":          memDir(),
		"/p/ok":       memFile("x"),
		"/p/dangling": {brokenLink: true},
		"/p/secret":   {mode: 0600, unreadable: true},
	}

	candidates, err := ListCandidates(context.Background(), fsys, ResolvedDirectory{Path: "/p"}, conf.Default())
	require.NoError(t, err)

	byName := map[string]Candidate{}
	for _, c := range candidates {
		byName[c.Label] = c
	}
	assert.Len(t, byName, 2)
	assert.NotContains(t, byName, "secret")

	link, ok := byName["dangling"]
	require.True(t, ok)
	assert.Equal(t, TypeLink, link.Meta.Type)
	assert.Equal(t, KindFile, link.Kind)
	assert.Nil(t, link.Meta.Stat)
	assert.NotNil(t, link.Meta.LinkStat)
	assert.False(t, link.Previewable())
}

func TestListCandidatesUnreadableDirectory(t *testing.T) {
	fsys := memFS{"/locked": {mode: os.ModeDir | 0700, unreadable: true}}

	for _, p := range []string{"/missing", "/locked"} {
		_, err := ListCandidates(context.Background(), fsys, ResolvedDirectory{Path: p}, conf.Default())
		assert.True(t, errors.Is(err, ErrDirectoryUnreadable), p)
	}
}

func TestListCandidatesCancelled(t *testing.T) {
	fsys := memFS{"/p": memDir(), "/p/a": memFile("")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ListCandidates(ctx, fsys, ResolvedDirectory{Path: "/p"}, conf.Default())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListCandidatesLocalFS(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "test1.txt"), []byte("test"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "subdir1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".hidden"), []byte("h"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "subdir1"), filepath.Join(tmpDir, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone"), filepath.Join(tmpDir, "broken")))

	base := filepath.ToSlash(tmpDir)
	resolved, err := Resolve(CursorContext{Line: "./"}, bufferOpts(base))
	require.NoError(t, err)

	candidates, err := ListCandidates(context.Background(), NewLocalFS(), resolved, conf.Default())
	require.NoError(t, err)

	got := map[string]Candidate{}
	for _, c := range candidates {
		got[c.FilterText] = c
	}
	want := []string{"test1.txt", "subdir1", "linkdir", "broken"}
	less := func(a, b string) bool { return a < b }
	var names []string
	for name := range got {
		names = append(names, name)
	}
	if diff := cmp.Diff(want, names, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, KindFolder, got["subdir1"].Kind)
	assert.Equal(t, "subdir1/", got["subdir1"].InsertText)
	// a link to a directory completes like the directory itself
	assert.Equal(t, KindFolder, got["linkdir"].Kind)
	assert.Equal(t, TypeLink, got["broken"].Meta.Type)
	assert.Equal(t, base+"/test1.txt", got["test1.txt"].Meta.Path)
}
