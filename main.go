package main

import "github.com/soapywu/pushkit/cmd"

func main() {
	cmd.Execute()
}
