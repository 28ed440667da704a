package main

import (
	"github.com/jjtimmons/smap/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
