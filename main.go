package main

import "github.com/vojtapolasek/todo-mcp-server/cmd"

func main() {
	cmd.Execute()
}
