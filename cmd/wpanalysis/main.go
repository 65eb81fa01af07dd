package main

import "github.com/VincentSchmalor/WPAnalysis/internal/cli"

func main() {
	cli.Execute()
}
