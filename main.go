package main

import "github.com/reguiia/turnaround-vision-dashboard/cmd"

func main() {
	cmd.Execute()
}
