package main

import "github.com/eng618/deck-packer/cmd"

func main() {
	cmd.Execute()
}
