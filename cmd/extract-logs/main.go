package main

import "github.com/Sonukumar0009/Farmart/internal/cmd"

func main() {
	cmd.Execute()
}
