package main

import "github.com/gb0808/beatblox-midi/cmd"

func main() {
	cmd.Execute()
}
