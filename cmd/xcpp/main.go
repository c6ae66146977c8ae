package main

import "xcpp/cmd/xcpp/commands"

func main() {
	commands.Execute()
}
