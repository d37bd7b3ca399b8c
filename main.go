package main

import "cooktime/cmd"

func main() {
	cmd.Execute()
}
