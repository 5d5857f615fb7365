package completion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"pathctx/pkg/conf"
)

// BinaryFileMarker replaces the preview of files containing a NUL byte
const BinaryFileMarker = "binary file"

// Preview returns the first lines of a regular file, fenced with its
// language when it can be inferred. Failures return ErrPreviewUnavailable.
func Preview(fsys FS, absolutePath string, maxLines int) (string, error) {
	if maxLines <= 0 {
		maxLines = conf.DefaultPreviewMaxLines
	}

	f, err := fsys.Open(absolutePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPreviewUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, conf.PreviewReadSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("%w: %v", ErrPreviewUnavailable, err)
	}
	data := buf[:n]

	if bytes.IndexByte(data, 0) >= 0 {
		return BinaryFileMarker, nil
	}

	text := strings.Join(firstLines(string(data), maxLines), "\n")
	if lang := languageTag(absolutePath, data); lang != "" {
		return "```" + lang + "\n" + text + "\n```", nil
	}
	return text, nil
}

func firstLines(s string, maxLines int) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.SplitN(s, "\n", maxLines+1)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// languageTag infers the fence tag from the file name, then from a shebang
func languageTag(absolutePath string, data []byte) string {
	name := path.Base(absolutePath)
	lang, _ := enry.GetLanguageByExtension(name)
	if lang == "" {
		lang, _ = enry.GetLanguageByFilename(name)
	}
	if lang == "" {
		lang, _ = enry.GetLanguageByShebang(data)
	}
	return strings.ToLower(strings.ReplaceAll(lang, " ", "-"))
}
