package main

import (
	"weatherstack-check/internal/cli"
)

func main() {
	cli.Execute()
}
