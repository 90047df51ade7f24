// slotree loads, renders and edits trees whose nodes own their children
// through slots. Trees are described in TOML, HCL or CUE files.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
