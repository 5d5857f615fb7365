package completion

import (
	"io"
	"io/fs"
)

// Entry is a directory entry as returned by a listing. Mode only carries the
// type bits of the entry itself, links are not followed.
type Entry struct {
	Name string
	Mode fs.FileMode
}

// FS is the filesystem access layer used to list and preview candidates.
// All paths are absolute and slash separated.
type FS interface {
	ReadDir(dir string) ([]Entry, error)
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
}

// Env is the platform lookup layer used by the resolver
type Env interface {
	HomeDir() (string, error)
	LookupEnv(key string) (string, bool)
	Getwd() (string, error)
}
