package completion

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAPath means the text before the cursor is not a path fragment.
	// It is a regular outcome yielding zero candidates.
	ErrNotAPath = errors.New("not a path")

	// ErrUndefinedVariable is returned for $NAME fragments when NAME is not
	// defined, it is treated as ErrNotAPath
	ErrUndefinedVariable = fmt.Errorf("%w: undefined environment variable", ErrNotAPath)

	// ErrDirectoryUnreadable means the scan directory is missing or cannot be listed
	ErrDirectoryUnreadable = errors.New("directory unreadable")

	// ErrPreviewUnavailable means no preview could be built for a candidate
	ErrPreviewUnavailable = errors.New("preview unavailable")
)
