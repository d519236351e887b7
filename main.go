package main

import "github.com/zinc-sig/relay/cmd"

func main() {
	cmd.Execute()
}
