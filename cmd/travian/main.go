package main

import (
	"github.com/andrescamacho/travian-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
