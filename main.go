package main

import "github.com/wagnerlima/designdata-mcp/cmd"

func main() {
	cmd.Execute()
}
