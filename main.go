package main

import "github.com/mmwale/expense-tracker/cmd"

func main() {
	cmd.Execute()
}
