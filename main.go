package main

import (
	"gazette/cmd"
)

func main() {
	cmd.Execute()
}
