package main

import "os"

func main() {
	os.Exit(MainWithArgs(os.Args[1:]))
}
