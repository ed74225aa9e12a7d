package main

import "annwatch/cmd"

func main() {
	cmd.Execute()
}
