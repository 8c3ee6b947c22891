package main

import "github.com/gamehorizon/gamehorizon/internal/cli"

func main() {
	cli.Execute()
}
