package main

import (
	"github.com/spf13/cobra"

	"github.com/jodevsa/undici/test/partdump/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
