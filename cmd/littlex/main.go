package main

import (
	"littlex/internal/cmd"
)

func main() {
	cmd.Run()
}
