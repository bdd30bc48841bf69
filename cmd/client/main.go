package main

import "filevault/cmd/client/cmd"

func main() {
	cmd.Execute()
}
