package main

import "github.com/morisil/jreleaser/internal/cli"

func main() {
	cli.Execute()
}
