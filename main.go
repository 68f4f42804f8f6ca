package main

import "github.com/weftlabs/weft/cmd"

func main() {
	cmd.Execute()
}
