package main

import "github.com/nizram/ping-monitor/cmd"

func main() {
	cmd.Execute()
}
