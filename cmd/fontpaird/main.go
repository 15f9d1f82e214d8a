package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"fontpair/internal/di"
	"fontpair/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the yaml config file")
	flag.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug mode")
	flag.Parse()

	app, cleanup, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize fontpaird: %s\n", err)
		os.Exit(1)
	}

	err = app.Run()
	cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fontpaird stopped with error: %s\n", err)
		os.Exit(1)
	}
}
