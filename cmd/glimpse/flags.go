// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -file, -palette, -config, -fps, -chrome, -status, -verbose, -version

package main

import "flag"

type cliArgs struct {
	file    string
	palette bool
	config  string
	fps     int
	chrome  string
	status  bool
	verbose bool
	version bool
}

func parseFlags() cliArgs {
	var args cliArgs

	flag.StringVar(&args.file, "file", "", "Render a local image file once and exit")
	flag.BoolVar(&args.palette, "palette", false, "Print the 256-color chart and exit")
	flag.StringVar(&args.config, "config", "", "Config file path (default ~/.config/glimpse/config.yaml)")
	flag.IntVar(&args.fps, "fps", 0, "Target frame rate (overrides config)")
	flag.StringVar(&args.chrome, "chrome", "", "Browser executable path (overrides config and $CHROME_PATH)")
	flag.BoolVar(&args.status, "status", false, "Show a status row with URL and frame rate")
	flag.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&args.version, "version", false, "Show version and exit")

	flag.Parse()
	return args
}

// remaining returns the non-flag command-line arguments.
func (a cliArgs) remaining() []string {
	return flag.Args()
}
