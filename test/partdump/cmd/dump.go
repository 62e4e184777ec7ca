package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jodevsa/undici/formdata"
)

var contentType string

var dumpCmd = &cobra.Command{
	Use:   "dump body-file",
	Short: "Decode a captured body and print its form entries",
	Args:  cobra.ExactArgs(1),
	Run:   RunDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&contentType, "content-type", "t", "",
		"content type the body was tagged with, including the boundary parameter")
	_ = dumpCmd.MarkFlagRequired("content-type")
	rootCmd.AddCommand(dumpCmd)
}

func RunDump(cmd *cobra.Command, args []string) {
	path := args[0]
	bodyFile, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer func() { _ = bodyFile.Close() }()

	d, err := formdata.NewDecoder(contentType)
	if err != nil {
		panic(err)
	}

	if _, err := io.Copy(d, bodyFile); err != nil {
		panic(err)
	}
	if err := d.Close(); err != nil {
		panic(err)
	}

	for i, e := range d.Entries() {
		fmt.Printf("[%d] name=%q", i, e.Name)
		if e.Filename != "" {
			fmt.Printf(" filename=%q", e.Filename)
		}
		if e.Type != "" {
			fmt.Printf(" type=%q", e.Type)
		}
		fmt.Printf(" (%d bytes)\n", len(e.Body))
		fmt.Printf("%s\n", e.Body)
	}

	if !d.Done() {
		fmt.Println("warning: no terminating boundary seen")
	}
}
