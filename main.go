package main

import "github.com/jmallory/cursor-export/cmd"

func main() {
	cmd.Execute()
}
