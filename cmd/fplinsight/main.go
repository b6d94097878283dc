package main

import "github.com/riskibarqy/fpl-insight/internal/interfaces/cli"

func main() {
	cli.Execute()
}
