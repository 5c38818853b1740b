package main

import "object-store/cmd"

func main() {
	cmd.Execute()
}
