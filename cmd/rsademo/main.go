package main

import "github.com/mahdiidarabi/mprsa/cmd/rsademo/cmd"

func main() {
	cmd.Execute()
}
