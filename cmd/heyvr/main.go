// Command heyvr packages a WebXR build and publishes it to heyVR.
package main

import (
	"os"

	"github.com/heyvr/heyvr-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
