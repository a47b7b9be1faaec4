package main

import "github.com/pageforge/pageforge-backend/cmd"

func main() {
	cmd.Init()
}
