package main

import "github.com/khrees2412/screener/cmd"

func main() {
	cmd.Execute()
}
