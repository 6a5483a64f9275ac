package main

import "github.com/daniela-hl/queue-sim/cmd"

func main() {
	cmd.Execute()
}
