package main

import "github.com/alfonsoamt/Flash-Drum/cli"

func main() {
	cli.Execute()
}
