package main

import "github.com/khanhnv2901/cmsaudit/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
