package main

import "github.com/monocle-dev/planboard/cmd/planboard/commands"

func main() {
	commands.Execute()
}
