package main

import "example.com/worklog/cmd"

func main() {
	cmd.Execute()
}
