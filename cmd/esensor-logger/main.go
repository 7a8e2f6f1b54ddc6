package main

import (
	"esensor/internal/cmd"
)

func main() {
	cmd.Execute()
}
