package main

import "github.com/lepinkainen/reelmeta/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
