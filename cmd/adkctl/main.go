// Command adkctl is the CLI surface's commandlet dispatcher: a
// `--cmdlet <name> [args...]` pattern that routes to a registered set,
// exiting 0 on success and non-zero on error or an unrecognized name
// (spec.md §6 "CLI surface (commandlets)").
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/adkcanvas/cncbus"
	"github.com/gogpu/adkcanvas/internal/gglog"
)

type cmdlet func(args []string) error

var cmdlets = map[string]cmdlet{
	"shader-compile": cmdletShaderCompile,
	"bif-extract":    cmdletBIFExtract,
	"json-deflate":   cmdletJSONDeflate,
	"http-test":      cmdletHTTPTest,
}

// setupLogging wires the module's package-level logger (internal/gglog)
// to a cncbus.LogSink, so every package's log.slog calls also reach a
// LOG1 bus subscriber at AddressLog, same as a long-running app process
// would, without adkctl needing to depend on any subscriber itself.
func setupLogging() {
	pool := cncbus.NewPool(64)
	bus := cncbus.NewBus(pool)
	sink := cncbus.NewLogSink(bus, cncbus.AddressLog, cncbus.MakeFOURCC('a', 'd', 'k', 'c'), slog.LevelInfo)
	gglog.SetLogger(slog.New(sink))
}

func main() {
	setupLogging()

	name := flag.String("cmdlet", "", "commandlet to run")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "no --cmdlet specified")
		os.Exit(1)
	}

	fn, ok := cmdlets[*name]
	if !ok {
		fmt.Fprintf(os.Stderr, "no commandlet with name: %s\n", *name)
		os.Exit(1)
	}

	if err := fn(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *name, err)
		os.Exit(1)
	}
}
