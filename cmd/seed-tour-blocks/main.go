package main

import "github.com/bartek5186/tourops/internal/cli"

func main() {
	cli.Main("seed-tour-blocks")
}
