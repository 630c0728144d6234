package main

import "astrocards/internal/cli"

func main() {
	cli.Execute()
}
