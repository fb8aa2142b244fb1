package main

import "nkeinfinity/internal/cli"

func main() {
	cli.Execute()
}
