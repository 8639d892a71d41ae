package main

import "github.com/quarterdeckhq/quarterdeck/internal/cli"

func main() {
	cli.Execute()
}
