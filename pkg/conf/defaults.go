package conf

const (
	// DefaultMarker is the decoration prefix enabled out of the box
	DefaultMarker = "@"

	// DefaultPreviewMaxLines caps the lines kept in a file preview
	DefaultPreviewMaxLines = 20

	// PreviewReadSize is how much of a file is read to build its preview
	PreviewReadSize = 1024

	// ConfigFileName is looked up inside the home directory
	ConfigFileName = "config.toml"

	// DebugLogFileName is the fixed debug log file inside the home directory
	DebugLogFileName = "debug.log"

	// DefaultAddress and DefaultPort for the websocket listener
	DefaultAddress = "127.0.0.1"
	DefaultPort    = 8787

	// characters with a meaning in the path grammar
	reservedTriggers = "/.~$ \t"
)
