// dum is a disk usage monitor: it watches the free space of the volume
// backing a set of configured directories and, when free space drops below
// a threshold, deletes the oldest files and subdirectories until the
// threshold is satisfied again. Deletions are permanent.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dum-monitor/dum/cmd"
	"github.com/dum-monitor/dum/internal/pkg/controler"
)

func main() {
	if err := cmd.Run(); err != nil {
		if errors.Is(err, controler.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
