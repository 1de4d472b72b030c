package main

import "github.com/sadopc/wakutore/internal/cmd"

func main() {
	cmd.Execute()
}
