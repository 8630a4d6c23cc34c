package main

import "github.com/AsierDev/zero-setup-biome/internal/cli"

func main() {
	cli.Execute()
}
