// elGFA: a validating parser for GFA and GFA2 assembly graph files.
// Copyright (c) 2026 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elgfa/blob/master/LICENSE.txt>.

package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/exascience/elgfa/gfa"
	"github.com/exascience/elgfa/internal"
)

// CheckHelp is the help string for this command.
const CheckHelp = "check parameters:\n" +
	"elgfa [check] gfa-file (gfa | gfa2)\n" +
	"[--two-pass]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

type inputFlags struct {
	twoPass, timed bool
	profile        string
	logPath        string
}

func (f *inputFlags) register(flags *flag.FlagSet) {
	flags.BoolVar(&f.twoPass, "two-pass", false, "check references only after all segments have been read")
	flags.BoolVar(&f.timed, "timed", false, "measure the runtime of parsing")
	flags.StringVar(&f.profile, "profile", "", "write a cpu profile for parsing")
	flags.StringVar(&f.logPath, "log-path", "", "write log files to the specified directory")
}

/*
Check implements the elgfa check command, which reports whether a file
is well-formed GFA or GFA2. The input file is os.Args[first], and the
format selector os.Args[first+1].
*/
func Check(first int) error {
	var opts inputFlags
	var flags flag.FlagSet
	opts.register(&flags)
	parseFlags(flags, first+2, CheckHelp)

	input := getFilename(os.Args[first], CheckHelp)
	format, err := getFormat(os.Args[first+1], CheckHelp)
	if err != nil {
		return err
	}

	setLogOutput(opts.logPath)

	if !checkExist("", input) {
		return errUsage
	}
	if _, err := parseInput(input, format, gfa.Options{TwoPass: opts.twoPass}, opts.timed, opts.profile); err != nil {
		return fmt.Errorf("parsing %v failed", filepath.Base(input))
	}
	log.Printf("Success! the file %v is accordant to the %v format\n", filepath.Base(input), strings.ToUpper(format.String()))
	return nil
}

// StatsHelp is the help string for this command.
const StatsHelp = "stats parameters:\n" +
	"elgfa stats gfa-file (gfa | gfa2)\n" +
	"[--two-pass]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Stats implements the elgfa stats command.
func Stats() error {
	var opts inputFlags
	var flags flag.FlagSet
	opts.register(&flags)
	parseFlags(flags, 4, StatsHelp)

	input := getFilename(os.Args[2], StatsHelp)
	format, err := getFormat(os.Args[3], StatsHelp)
	if err != nil {
		return err
	}

	setLogOutput(opts.logPath)

	if !checkExist("", input) {
		return errUsage
	}
	graph, err := parseInput(input, format, gfa.Options{TwoPass: opts.twoPass}, opts.timed, opts.profile)
	if err != nil {
		return fmt.Errorf("parsing %v failed", filepath.Base(input))
	}

	out := bufio.NewWriter(os.Stdout)
	printStats(out, gfa.ComputeStats(graph))
	return out.Flush()
}

func printStats(out *bufio.Writer, stats gfa.Stats) {
	fmt.Fprintf(out, "format\t%v\n", stats.Dialect)
	fmt.Fprintf(out, "segments\t%v\n", stats.Segments)
	switch stats.Dialect {
	case gfa.GFA1:
		fmt.Fprintf(out, "links\t%v\n", stats.Links)
		fmt.Fprintf(out, "containments\t%v\n", stats.Containments)
		fmt.Fprintf(out, "paths\t%v\n", stats.Paths)
	case gfa.GFA2:
		fmt.Fprintf(out, "fragments\t%v\n", stats.Fragments)
		fmt.Fprintf(out, "edges\t%v\n", stats.Edges)
		fmt.Fprintf(out, "gaps\t%v\n", stats.Gaps)
		fmt.Fprintf(out, "groups\t%v\n", stats.Groups)
	}
	fmt.Fprintf(out, "isolated segments\t%v\n", stats.Isolated)
	fmt.Fprintf(out, "segments with known length\t%v\n", stats.KnownLengths)
	fmt.Fprintf(out, "total length\t%v\n", stats.TotalLength)
	fmt.Fprintf(out, "max length\t%v\n", stats.MaxLength)
	fmt.Fprintf(out, "N50\t%v\n", stats.N50)
}

// FormatHelp is the help string for this command.
const FormatHelp = "format parameters:\n" +
	"elgfa format gfa-file (gfa | gfa2) output-file\n" +
	"[--two-pass]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n"

// Format implements the elgfa format command, which parses a file and
// writes it back out with segments before the records that refer to
// them.
func Format() error {
	var opts inputFlags
	var flags flag.FlagSet
	opts.register(&flags)
	parseFlags(flags, 5, FormatHelp)

	input := getFilename(os.Args[2], FormatHelp)
	format, err := getFormat(os.Args[3], FormatHelp)
	if err != nil {
		return err
	}
	output := getFilename(os.Args[4], FormatHelp)

	setLogOutput(opts.logPath)

	if !checkExist("", input) || !checkCreate("", output) {
		return errUsage
	}
	graph, err := parseInput(input, format, gfa.Options{TwoPass: opts.twoPass}, opts.timed, opts.profile)
	if err != nil {
		return fmt.Errorf("parsing %v failed", filepath.Base(input))
	}

	file := internal.FileCreate(output)
	defer internal.Close(file)
	out := bufio.NewWriter(file)
	timedRun(opts.timed, "", "Writing "+output+".", 2, func() {
		err = graph.Format(out)
	})
	if err != nil {
		return err
	}
	return out.Flush()
}
