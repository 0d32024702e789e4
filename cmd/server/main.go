package main

import (
	"github.com/snippetsapp/snippets/internal/cli"
)

func main() {
	cli.Execute()
}
