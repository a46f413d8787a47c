package main

import "github.com/davebream/timeridle/cmd"

func main() {
	cmd.Execute()
}
