package main

import "github.com/fsdedup/hardlinker/cmd"

func main() {
	cmd.Execute()
}
