package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pathctx/pkg/completion"
	"pathctx/pkg/conf"
	"pathctx/pkg/listener"
)

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Lists the path candidates for a line of text",
	Long: `Classifies the text before the cursor, given with --line, and lists
the entries of the directory it resolves to.

Relative paths are resolved against --buffer-dir, or the working
directory with --command-mode.`,
	Args:         cobra.NoArgs,
	RunE:         runComplete,
	SilenceUsage: true,
}

// Complete flags
var (
	cLine          string
	cOffset        int
	cBufferDir     string
	cCommandMode   bool
	cCommentString string
	cFiletype      string
	cResolve       bool
	cJson          bool
	cRemote        remoteFlags
)

func init() {
	rootCmd.AddCommand(completeCmd)

	completeCmd.Flags().StringVar(&cLine, "line", "", "Line text up to the cursor")
	completeCmd.Flags().IntVar(&cOffset, "offset", 0, "1-based column where the keyword starts, computed when 0")
	completeCmd.Flags().StringVar(&cBufferDir, "buffer-dir", "", "Directory of the edited buffer")
	completeCmd.Flags().BoolVar(&cCommandMode, "command-mode", false, "Resolve relative paths against the working directory")
	completeCmd.Flags().StringVar(&cCommentString, "comment-string", "", "Comment string of the buffer, e.g. '// %s'")
	completeCmd.Flags().StringVar(&cFiletype, "filetype", "", "Filetype of the buffer")
	completeCmd.Flags().BoolVar(&cResolve, "resolve", false, "Adds a preview to regular file candidates")
	completeCmd.Flags().BoolVar(&cJson, "json", false, "Prints candidates as JSON")
	cRemote.register(completeCmd.Flags())
	conf.RegisterFlags(completeCmd.Flags())

	_ = completeCmd.MarkFlagRequired("line")
}

func runComplete(cmd *cobra.Command, args []string) error {
	log, closer, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fsys, env, fsCloser, err := cRemote.open(cmd.Context(), log)
	if err != nil {
		return err
	}
	defer func() { _ = fsCloser.Close() }()

	mode := completion.BufferContext
	if cCommandMode {
		mode = completion.CommandContext
	}

	source := completion.NewSource(fsys, env, log)
	candidates, err := source.Complete(cmd.Context(), completion.Request{
		ID: "cli",
		Context: completion.CursorContext{
			Line:          cLine,
			Offset:        cOffset,
			CommentString: cCommentString,
			Filetype:      cFiletype,
		},
		Mode:      mode,
		BufferDir: cBufferDir,
		Config:    cfg,
	})
	if err != nil {
		return err
	}
	if cResolve {
		for i := range candidates {
			candidates[i] = source.ResolveItem(candidates[i], cfg.PreviewMaxLines)
		}
	}

	if cJson {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(listener.ToItems(candidates))
	}
	printCandidates(candidates)
	return nil
}

func printCandidates(candidates []completion.Candidate) {
	for _, c := range candidates {
		fmt.Printf("%s\t%s\n", candidateLabel(c), color.New(color.Faint).Sprint(c.Meta.Path))
		if c.Documentation != "" {
			fmt.Println(c.Documentation)
		}
	}
}

func candidateLabel(c completion.Candidate) string {
	switch {
	case c.Meta.Type == completion.TypeLink && c.Meta.Stat == nil:
		return color.RedString(c.Label)
	case c.Meta.Type == completion.TypeLink:
		return color.CyanString(c.Label)
	case c.Kind == completion.KindFolder:
		return color.BlueString(c.Label)
	}
	return c.Label
}
