package main

import "github.com/dcontreras/workshop-management/cmd"

func main() {
	cmd.Execute()
}
