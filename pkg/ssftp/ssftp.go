// Package ssftp opens SFTP sessions used to complete paths on remote hosts
package ssftp

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"pathctx/pkg/slog"
)

const defaultPort = 22

// Target is a remote endpoint in the user@host[:port] form
type Target struct {
	User string
	Host string
	Port int
}

func (t Target) Address() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

func (t Target) String() string {
	return t.User + "@" + t.Address()
}

// ParseTarget parses user@host[:port], the user defaults to the local one
func ParseTarget(s string) (Target, error) {
	t := Target{Port: defaultPort}
	if s == "" {
		return t, fmt.Errorf("empty target")
	}

	hostPort := s
	if at := strings.LastIndex(s, "@"); at >= 0 {
		t.User = s[:at]
		hostPort = s[at+1:]
	}

	host, port, err := net.SplitHostPort(hostPort)
	if err != nil {
		// no port
		host = strings.Trim(hostPort, "[]")
	} else {
		p, pErr := strconv.Atoi(port)
		if pErr != nil || p <= 0 || p > 65535 {
			return t, fmt.Errorf("invalid port %q", port)
		}
		t.Port = p
	}
	if host == "" {
		return t, fmt.Errorf("host must be specified")
	}
	t.Host = host

	if t.User == "" {
		u, uErr := user.Current()
		if uErr != nil {
			return t, fmt.Errorf("user must be specified: %w", uErr)
		}
		t.User = u.Username
	}
	return t, nil
}

type DialConfig struct {
	Target Target
	// IdentityFile is a private key, when empty the ssh-agent is used
	IdentityFile   string
	KnownHostsFile string
	// Insecure skips host key verification
	Insecure bool
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Client is an SFTP client bound to its SSH connection, and to the
// ssh-agent connection when the agent provided the keys
type Client struct {
	*sftp.Client
	sshClient *ssh.Client
	agentConn net.Conn
}

// Close terminates the SFTP session, the SSH connection and the agent
// connection, returning the first error
func (c *Client) Close() error {
	sErr := c.Client.Close()
	cErr := c.sshClient.Close()
	var aErr error
	if c.agentConn != nil {
		aErr = c.agentConn.Close()
	}
	if sErr != nil {
		return sErr
	}
	if cErr != nil {
		return cErr
	}
	return aErr
}

// authMethods returns the public key methods, and the agent connection
// backing them when no identity file is given. The caller closes it.
func authMethods(identityFile string) ([]ssh.AuthMethod, net.Conn, error) {
	if identityFile != "" {
		pemBytes, err := os.ReadFile(identityFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read identity file: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(pemBytes)
		if err != nil {
			return nil, nil, fmt.Errorf("ParsePrivateKey: %v", err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil, nil
	}

	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, nil, fmt.Errorf("no identity file given and SSH_AUTH_SOCK is not set")
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reach ssh-agent: %w", err)
	}
	return []ssh.AuthMethod{ssh.PublicKeysCallback(agent.NewClient(conn).Signers)}, conn, nil
}

func hostKeyCallback(cfg DialConfig) (ssh.HostKeyCallback, error) {
	if cfg.Insecure {
		return ssh.InsecureIgnoreHostKey(), nil
	}
	knownHosts := cfg.KnownHostsFile
	if knownHosts == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("couldn't get user home directory: %w", err)
		}
		knownHosts = home + "/.ssh/known_hosts"
	}
	cb, err := knownhosts.New(knownHosts)
	if err != nil {
		return nil, fmt.Errorf("failed to load known hosts: %w", err)
	}
	return cb, nil
}

// Dial connects to the target and starts an SFTP session
func Dial(ctx context.Context, cfg DialConfig) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.NewNopLogger()
	}
	auth, agentConn, err := authMethods(cfg.IdentityFile)
	if err != nil {
		return nil, err
	}
	closeAgent := func() {
		if agentConn != nil {
			_ = agentConn.Close()
		}
	}

	hostKeyCb, err := hostKeyCallback(cfg)
	if err != nil {
		closeAgent()
		return nil, err
	}

	sshConfig := &ssh.ClientConfig{
		User:            cfg.Target.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCb,
		ClientVersion:   "SSH-2.0-pathctx",
		Timeout:         cfg.Timeout,
	}

	dialer := &net.Dialer{Timeout: cfg.Timeout}
	netConn, err := dialer.DialContext(ctx, "tcp", cfg.Target.Address())
	if err != nil {
		closeAgent()
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Target.Address(), err)
	}

	cConn, newChan, reqChan, err := ssh.NewClientConn(netConn, cfg.Target.Address(), sshConfig)
	if err != nil {
		_ = netConn.Close()
		closeAgent()
		return nil, fmt.Errorf("failed to establish SSH connection: %w", err)
	}
	sshClient := ssh.NewClient(cConn, newChan, reqChan)

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		closeAgent()
		return nil, fmt.Errorf("failed to start SFTP session: %w", err)
	}

	cfg.Logger.DebugWith("SFTP session established",
		slog.F("target", cfg.Target.String()))

	return &Client{Client: sftpClient, sshClient: sshClient, agentConn: agentConn}, nil
}
