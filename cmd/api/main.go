package main

import "github.com/BruksfildServices01/salon-scheduler/internal/cli"

func main() {
	cli.Execute()
}
