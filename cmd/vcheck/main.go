package main

import "github.com/dmitrymomot/validation/pkg/cli"

func main() {
	cli.Execute()
}
