// Command kerf evaluates a pocket job script and renders the resulting
// clearing toolpaths as G-code.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/kerf/pkg/engine"
	"github.com/chazu/kerf/pkg/gcode"
	"github.com/chazu/kerf/pkg/tool"
)

func main() {
	var (
		scriptPath  = flag.String("script", "", "job script to evaluate (required)")
		toolsPath   = flag.String("tools", "", "endmill catalog XML file")
		machinePath = flag.String("machine", "", "machine profile TOML file")
		outPath     = flag.String("out", "", "output G-code file (default stdout)")
	)
	flag.Parse()

	if *scriptPath == "" {
		fmt.Fprintln(os.Stderr, "error: -script is required")
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(*scriptPath)
	if err != nil {
		log.Fatalf("reading script: %v", err)
	}

	var cat *tool.Catalog
	if *toolsPath != "" {
		cat, err = tool.LoadCatalogFile(*toolsPath)
		if err != nil {
			log.Fatalf("loading endmill catalog: %v", err)
		}
	}

	machine := gcode.DefaultMachine()
	if *machinePath != "" {
		machine, err = gcode.LoadMachineFile(*machinePath)
		if err != nil {
			log.Fatalf("loading machine profile: %v", err)
		}
	}

	j, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		log.Fatalf("evaluating %s: %v", *scriptPath, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", *scriptPath, e.Error())
		}
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			log.Fatalf("creating output: %v", err)
		}
		defer out.Close()
	}

	if err := Generate(j, cat, machine, out); err != nil {
		log.Fatalf("generating toolpath: %v", err)
	}
}
