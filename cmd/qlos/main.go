package main

import "github.com/Brooklss/Quarterly-Life-OS/cmd/qlos/root"

func main() {
	root.Execute()
}
