package main

import "qalookup/internal/cli"

func main() {
	cli.Execute()
}
