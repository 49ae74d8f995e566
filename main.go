package main

import "foxholewar/cli"

func main() {
	cli.Execute()
}
