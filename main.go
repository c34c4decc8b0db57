package main

import "github.com/01Developer95/github-wrapped/cmd"

func main() {
	cmd.Execute()
}
