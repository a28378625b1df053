package main

import "github.com/devbush/likewrapped/internal/adapters/cli"

func main() {
	cli.Execute()
}
