package main

import "github.com/strrl/jb-recent/cmd/jb-recent/commands"

func main() {
	commands.Execute()
}
