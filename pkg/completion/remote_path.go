package completion

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/pkg/sftp"
)

// RemoteFS reads a remote filesystem through SFTP. SFTP paths are always
// slash separated so no conversion is needed.
type RemoteFS struct {
	sftpClient *sftp.Client
}

// NewRemoteFS creates a new remote filesystem accessor
func NewRemoteFS(sftpClient *sftp.Client) *RemoteFS {
	return &RemoteFS{
		sftpClient: sftpClient,
	}
}

func (r *RemoteFS) ReadDir(dir string) ([]Entry, error) {
	if r.sftpClient == nil {
		return nil, fmt.Errorf("no sftp client")
	}
	// SFTP listings carry lstat information
	infos, err := r.sftpClient.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, Entry{Name: info.Name(), Mode: info.Mode().Type()})
	}
	return entries, nil
}

func (r *RemoteFS) Stat(name string) (fs.FileInfo, error) {
	if r.sftpClient == nil {
		return nil, fmt.Errorf("no sftp client")
	}
	return r.sftpClient.Stat(name)
}

func (r *RemoteFS) Lstat(name string) (fs.FileInfo, error) {
	if r.sftpClient == nil {
		return nil, fmt.Errorf("no sftp client")
	}
	return r.sftpClient.Lstat(name)
}

func (r *RemoteFS) Open(name string) (io.ReadCloser, error) {
	if r.sftpClient == nil {
		return nil, fmt.Errorf("no sftp client")
	}
	return r.sftpClient.Open(name)
}

// RemoteEnv answers platform lookups for an SFTP session. The session starts
// in the user's home, which is also used as working directory. Remote
// environment variables are not reachable through SFTP so none are defined.
type RemoteEnv struct {
	sftpClient *sftp.Client
}

func NewRemoteEnv(sftpClient *sftp.Client) *RemoteEnv {
	return &RemoteEnv{sftpClient: sftpClient}
}

func (r *RemoteEnv) HomeDir() (string, error) {
	if r.sftpClient == nil {
		return "", fmt.Errorf("no sftp client")
	}
	return r.sftpClient.Getwd()
}

func (r *RemoteEnv) LookupEnv(string) (string, bool) {
	return "", false
}

func (r *RemoteEnv) Getwd() (string, error) {
	return r.HomeDir()
}
