package main

import "github.com/papapumpkin/sunrise/cmd"

func main() {
	cmd.Execute()
}
