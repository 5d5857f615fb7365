package completion

import (
	"errors"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

type fakeEnv struct {
	home string
	wd   string
	vars map[string]string
}

func (e fakeEnv) HomeDir() (string, error) {
	if e.home == "" {
		return "", errors.New("no home")
	}
	return e.home, nil
}

func (e fakeEnv) LookupEnv(key string) (string, bool) {
	v, ok := e.vars[key]
	return v, ok
}

func (e fakeEnv) Getwd() (string, error) {
	if e.wd == "" {
		return "", errors.New("no cwd")
	}
	return e.wd, nil
}

// memNode is a file, a directory or a link of the in-memory filesystem
type memNode struct {
	mode       fs.FileMode
	data       string
	brokenLink bool
	unreadable bool
}

type memInfo struct {
	name string
	node memNode
}

func (i memInfo) Name() string       { return i.name }
func (i memInfo) Size() int64        { return int64(len(i.node.data)) }
func (i memInfo) Mode() fs.FileMode  { return i.node.mode }
func (i memInfo) ModTime() time.Time { return time.Time{} }
func (i memInfo) IsDir() bool        { return i.node.mode.IsDir() }
func (i memInfo) Sys() interface{}   { return nil }

// memFS is keyed by absolute path, parents must be declared as directories
type memFS map[string]memNode

func (m memFS) ReadDir(dir string) ([]Entry, error) {
	node, ok := m[dir]
	if !ok || !node.mode.IsDir() {
		return nil, fs.ErrNotExist
	}
	if node.unreadable {
		return nil, fs.ErrPermission
	}
	var entries []Entry
	for p, n := range m {
		if p != "/" && path.Dir(p) == dir {
			entries = append(entries, Entry{Name: path.Base(p), Mode: n.mode.Type()})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m memFS) Stat(name string) (fs.FileInfo, error) {
	node, ok := m[name]
	if !ok || node.brokenLink {
		return nil, fs.ErrNotExist
	}
	if node.unreadable {
		return nil, fs.ErrPermission
	}
	return memInfo{name: path.Base(name), node: node}, nil
}

func (m memFS) Lstat(name string) (fs.FileInfo, error) {
	node, ok := m[name]
	if !ok || node.unreadable {
		return nil, fs.ErrNotExist
	}
	if node.brokenLink {
		return memInfo{name: path.Base(name), node: memNode{mode: fs.ModeSymlink}}, nil
	}
	return memInfo{name: path.Base(name), node: node}, nil
}

func (m memFS) Open(name string) (io.ReadCloser, error) {
	node, ok := m[name]
	if !ok || node.mode.IsDir() {
		return nil, fs.ErrNotExist
	}
	return io.NopCloser(strings.NewReader(node.data)), nil
}

func memDir() memNode { return memNode{mode: fs.ModeDir | 0755} }

func memFile(data string) memNode { return memNode{mode: 0644, data: data} }
