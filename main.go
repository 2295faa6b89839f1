package main

import "github.com/brockcataldi/deodar-docs/cmd"

func main() {
	cmd.Execute()
}
