package main

import "github.com/Cordillera123/APIs-Solstic-sub002/cmd"

func main() {
	cmd.Execute()
}
