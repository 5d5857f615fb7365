package main

import "pathctx/cmd"

func main() {
	cmd.Execute()
}
