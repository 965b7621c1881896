package main

import "github.com/soxofaan/jsonfold/cmd/cli"

func main() {
	cli.Execute()
}
