// Command rck runs headless skirmishes of the game.
package main

import "github.com/ackslab/rck/rck/cmd"

func main() {
	cmd.Execute()
}
