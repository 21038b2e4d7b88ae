package main

import "btviz/internal/cli"

func main() {
	cli.Execute()
}
