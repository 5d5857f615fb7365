package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"pathctx/pkg/completion"
	"pathctx/pkg/slog"
	"pathctx/pkg/ssftp"
)

// remoteFlags select the filesystem candidates are listed from
type remoteFlags struct {
	target     string
	identity   string
	knownHosts string
	insecure   bool
	timeout    time.Duration
}

func (r *remoteFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&r.target, "remote", "", "Complete against a remote host over SFTP [user@]host[:port]")
	fs.StringVar(&r.identity, "identity", "", "Private key used for the remote host, defaults to the ssh-agent")
	fs.StringVar(&r.knownHosts, "known-hosts", "", "Known hosts file, defaults to ~/.ssh/known_hosts")
	fs.BoolVar(&r.insecure, "insecure", false, "Skips remote host key verification")
	fs.DurationVar(&r.timeout, "timeout", 10*time.Second, "Remote connection timeout")
}

// open returns the local filesystem unless a remote target was given
func (r *remoteFlags) open(ctx context.Context, log *slog.Logger) (completion.FS, completion.Env, io.Closer, error) {
	if r.target == "" {
		return completion.NewLocalFS(), completion.OSEnv{}, nopCloser{}, nil
	}
	target, err := ssftp.ParseTarget(r.target)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid remote target: %w", err)
	}
	client, err := ssftp.Dial(ctx, ssftp.DialConfig{
		Target:         target,
		IdentityFile:   r.identity,
		KnownHostsFile: r.knownHosts,
		Insecure:       r.insecure,
		Timeout:        r.timeout,
		Logger:         log,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return completion.NewRemoteFS(client.Client), completion.NewRemoteEnv(client.Client), client, nil
}
