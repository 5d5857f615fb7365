package conf

const (
	// HomeEnvVar overrides the home directory (default ~/.pathctx)
	HomeEnvVar = "PATHCTX_HOME"
	// DebugEnvVar enables the debug log file when not empty
	DebugEnvVar = "PATHCTX_DEBUG"

	TrailingSlashEnvVar      = "PATHCTX_TRAILING_SLASH"
	LabelTrailingSlashEnvVar = "PATHCTX_LABEL_TRAILING_SLASH"
	BaseDirectoryEnvVar      = "PATHCTX_BASE_DIRECTORY"
)
