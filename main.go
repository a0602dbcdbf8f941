package main

import "github.com/frahmantamala/finflow/cmd"

func main() {
	cmd.Execute()
}
