package main

import "github.com/chris/mapdate/cmd"

func main() {
	cmd.Execute()
}
