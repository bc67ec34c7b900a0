package main

import "github.com/theirongolddev/finchat/cmd"

func main() {
	cmd.Execute()
}
