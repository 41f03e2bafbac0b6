package main

import "github.com/iksnae/rds-session/cmd"

func main() {
	cmd.Execute()
}
