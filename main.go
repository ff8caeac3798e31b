package main

import "github.com/ZacxDev/go-static-blog/cmd"

func main() {
	cmd.Execute()
}
