// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/bfm/config"
	"github.com/ezrec/bfm/interp"
	"github.com/ezrec/bfm/vm"
)

func main() {
	var conf string
	var input string
	var output string
	var dump string
	var limit int
	var verbose bool

	flag.StringVar(&conf, "c", "", "bfm.toml configuration file")
	flag.StringVar(&input, "i", "-", "Program input")
	flag.StringVar(&output, "o", "-", "Program output")
	flag.StringVar(&dump, "d", "", "Write final machine snapshot to file")
	flag.IntVar(&limit, "n", 0, "Step limit, 0 for unlimited")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("%v: No program file given", os.Args[0])
	}
	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	cfg := config.Default()
	if len(conf) != 0 {
		var err error
		cfg, err = config.Load(conf)
		if err != nil {
			log.Fatalf("%v: %v", conf, err)
		}
	}

	// Flags given on the command line override the configuration file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "i":
			cfg.Input = input
		case "o":
			cfg.Output = output
		case "d":
			cfg.Dump = dump
		case "n":
			cfg.StepLimit = limit
		case "v":
			cfg.Trace = verbose
		}
	})

	path := flag.Arg(0)
	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer inf.Close()

	parser := &vm.Parser{Verbose: cfg.Trace}
	prog, err := parser.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	in := interp.NewInterp(prog)
	in.Verbose = cfg.Trace
	in.StepLimit = cfg.StepLimit

	if cfg.Input == "-" {
		in.Input = os.Stdin
	} else {
		pif, err := os.Open(cfg.Input)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Input, err)
		}
		defer pif.Close()
		in.Input = pif
	}

	if cfg.Output == "-" {
		in.Output = os.Stdout
	} else {
		ouf, err := os.Create(cfg.Output)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Output, err)
		}
		defer ouf.Close()
		in.Output = ouf
	}

	err = in.Run()
	if err != nil {
		log.Fatal(err)
	}

	if len(cfg.Dump) != 0 {
		duf, err := os.Create(cfg.Dump)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Dump, err)
		}
		defer duf.Close()

		err = in.DumpState(duf)
		if err != nil {
			log.Fatalf("%v: %v", cfg.Dump, err)
		}
	}
}
