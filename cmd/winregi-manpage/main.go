package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/winregi/internal/cli"
	"github.com/arthur-debert/winregi/internal/version"
)

func main() {
	dir := ""
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	rootCmd := cli.NewRootCmd()
	header := &doc.GenManHeader{
		Title:   "WINREGI",
		Section: "1",
		Source:  "winregi " + version.Version,
		Manual:  "winregi manual",
	}

	var err error
	if dir == "" {
		err = doc.GenMan(rootCmd, header, os.Stdout)
	} else {
		err = doc.GenManTree(rootCmd, header, dir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
