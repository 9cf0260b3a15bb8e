package main

import (
	"github.com/NVIDIA/collection-diff/pkg/cli"
)

func main() {
	cli.Execute()
}
