package conf

import (
	"fmt"
	"runtime"
)

// Version is set at build time through -ldflags
var Version = "development"

// ProtoVersion is announced by the websocket listener, it changes whenever
// the request or response shapes change
const ProtoVersion = "pathctx-v1"

func PrintVersion() {
	fmt.Printf("pathctx %s (%s) %s/%s %s\n", Version, ProtoVersion, runtime.GOOS, runtime.GOARCH, runtime.Version())
}
