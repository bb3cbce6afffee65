package main

import "github.com/librarycatalog/backend/cmd/libraryctl/commands"

func main() {
	commands.Execute()
}
