package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"pathctx/pkg/completion"
	"pathctx/pkg/conf"
	"pathctx/pkg/spath"
)

var previewCmd = &cobra.Command{
	Use:          "preview PATH",
	Short:        "Prints the preview of a file",
	Args:         cobra.ExactArgs(1),
	RunE:         runPreview,
	SilenceUsage: true,
}

var pRemote remoteFlags

func init() {
	rootCmd.AddCommand(previewCmd)

	pRemote.register(previewCmd.Flags())
	conf.RegisterFlags(previewCmd.Flags())
}

func runPreview(cmd *cobra.Command, args []string) error {
	log, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fsys, env, fsCloser, err := pRemote.open(cmd.Context(), log)
	if err != nil {
		return err
	}
	defer func() { _ = fsCloser.Close() }()

	target := filepath.ToSlash(args[0])
	if !spath.IsAbs(target) {
		wd, wErr := env.Getwd()
		if wErr != nil {
			return fmt.Errorf("failed to resolve %q: %w", args[0], wErr)
		}
		target = spath.Join(wd, target)
	}

	doc, err := completion.Preview(fsys, target, cfg.PreviewMaxLines)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}
	fmt.Println(doc)
	return nil
}
