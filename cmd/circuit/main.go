package main

import "github.com/OpenTraceLab/OpenTraceCircuit/cmd/circuit/cmd"

func main() {
	cmd.Execute()
}
