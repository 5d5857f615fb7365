package completion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathctx/pkg/conf"
)

func newTestSource() *Source {
	fsys := memFS{
		"/repo":          memDir(),
		"/repo/.env":     memFile("KEY=1\n"),
		"/repo/src":      memDir(),
		"/repo/src/a.go": memFile("package a\n"),
		"/work":          memDir(),
		"/work/w.txt":    memFile("w"),
	}
	return NewSource(fsys, testEnv, nil)
}

func TestSourceComplete(t *testing.T) {
	s := newTestSource()

	testCases := []struct {
		name     string
		req      Request
		expected []string
	}{
		{
			name:     "Buffer directory",
			req:      Request{Context: CursorContext{Line: "./src/"}, BufferDir: "/repo", Config: conf.Default()},
			expected: []string{"a.go"},
		},
		{
			name:     "Command mode uses the working directory",
			req:      Request{Context: CursorContext{Line: ":e ./"}, Mode: CommandContext, BufferDir: "/repo", Config: conf.Default()},
			expected: []string{"w.txt"},
		},
		{
			name:     "Hidden entries after a marker",
			req:      Request{Context: CursorContext{Line: "@.e"}, BufferDir: "/repo", Config: conf.Default()},
			expected: []string{"@.env", "@src/"},
		},
		{
			name:     "Marker hides dot entries by default",
			req:      Request{Context: CursorContext{Line: "@s"}, BufferDir: "/repo", Config: conf.Default()},
			expected: []string{"@src/"},
		},
		{
			name:     "Not a path",
			req:      Request{Context: CursorContext{Line: "http://x/"}, BufferDir: "/repo", Config: conf.Default()},
			expected: []string{},
		},
		{
			name:     "Missing directory",
			req:      Request{Context: CursorContext{Line: "./nope/"}, BufferDir: "/repo", Config: conf.Default()},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			candidates, err := s.Complete(context.Background(), tc.req)
			require.NoError(t, err)
			require.NotNil(t, candidates)
			labels := []string{}
			for _, c := range candidates {
				labels = append(labels, c.Label)
			}
			assert.Equal(t, tc.expected, labels)
		})
	}
}

func TestSourceCompleteCancelled(t *testing.T) {
	s := newTestSource()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Complete(ctx, Request{Context: CursorContext{Line: "./src/"}, BufferDir: "/repo", Config: conf.Default()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceResolveItem(t *testing.T) {
	s := newTestSource()
	candidates, err := s.Complete(context.Background(), Request{Context: CursorContext{Line: "./"}, BufferDir: "/repo", Config: conf.Default()})
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	folder := s.ResolveItem(candidates[0], 5)
	assert.Empty(t, folder.Documentation)

	candidates, err = s.Complete(context.Background(), Request{Context: CursorContext{Line: "./src/"}, BufferDir: "/repo", Config: conf.Default()})
	require.NoError(t, err)
	resolved := s.ResolveItem(candidates[0], 5)
	assert.Equal(t, "```go\npackage a\n```", resolved.Documentation)

	vanished := Candidate{Label: "x", Meta: Metadata{Path: "/repo/x", Type: TypeFile}}
	assert.Empty(t, s.ResolveItem(vanished, 5).Documentation)
}

func TestSourceTriggers(t *testing.T) {
	assert.Equal(t, []string{"/", "."}, newTestSource().TriggerCharacters())
}

func TestBaseDirFor(t *testing.T) {
	req := Request{BufferDir: "/buf"}

	assert.Equal(t, "/buf", BaseDirFor(conf.Config{BaseDirectory: conf.BaseDirBuffer}, testEnv)(req))
	assert.Equal(t, "/work", BaseDirFor(conf.Config{BaseDirectory: conf.BaseDirBuffer}, testEnv)(Request{}))
	assert.Equal(t, "/work", BaseDirFor(conf.Config{BaseDirectory: conf.BaseDirCwd}, testEnv)(req))
	assert.Equal(t, "/fixed", BaseDirFor(conf.Config{BaseDirectory: "/fixed"}, testEnv)(req))
}

func TestRulesFromConfig(t *testing.T) {
	rules := RulesFromConfig([]conf.Marker{
		{Trigger: "@", Scope: conf.ScopeFirstSegment},
		{Trigger: "%", Scope: conf.ScopeNone},
		{Trigger: "ab", Scope: conf.ScopeNone},
	})
	assert.Equal(t, []DecorationRule{
		{Trigger: '@', Scope: ReinsertFirstSegment},
		{Trigger: '%', Scope: ReinsertNever},
	}, rules)
}
