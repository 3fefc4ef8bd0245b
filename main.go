package main

import "loadorder-manager/cmd"

func main() {
	cmd.Execute()
}
