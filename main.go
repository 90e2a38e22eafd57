package main

import (
	"os"

	"github.com/kamal-hamza/emobridge/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
