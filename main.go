package main

import "github.com/KaramelBytes/apptloom-cli/cmd"

func main() {
	cmd.Execute()
}
