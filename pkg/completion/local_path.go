package completion

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalFS reads the local filesystem
type LocalFS struct{}

// NewLocalFS creates a new local filesystem accessor
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

func (LocalFS) ReadDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(filepath.FromSlash(dir))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		entries = append(entries, Entry{Name: d.Name(), Mode: d.Type()})
	}
	return entries, nil
}

func (LocalFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(filepath.FromSlash(name))
}

func (LocalFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(filepath.FromSlash(name))
}

func (LocalFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.FromSlash(name))
}

// OSEnv looks up the home directory, environment and working directory of
// the current process
type OSEnv struct{}

func (OSEnv) HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(home), nil
}

func (OSEnv) LookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return filepath.ToSlash(v), ok
}

func (OSEnv) Getwd() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(wd), nil
}
