package main

import (
	"buildscan/cmd"
)

func main() {
	cmd.Execute()
}
