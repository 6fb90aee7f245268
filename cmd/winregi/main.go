package main

import (
	"os"

	"github.com/arthur-debert/winregi/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
