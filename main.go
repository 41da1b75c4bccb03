package main

import "search-schema/cmd"

func main() {
	cmd.Execute()
}
