package main

import "unitify/internal/cli"

func main() {
	cli.Execute()
}
