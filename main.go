package main

import "github.com/mj1618/activate-window/cmd"

func main() {
	cmd.Execute()
}
