package main

import "ghosttype/internal/cli"

func main() {
	cli.Execute()
}
