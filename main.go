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

// elgfa checks GFA and GFA2 assembly graph files for well-formedness:
// every record must follow the grammar of its dialect, every
// identifier must be unique, and every reference must name a declared
// segment.
//
// Please see https://github.com/exascience/elgfa for a documentation
// of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/elgfa/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: check, stats, format")
	fmt.Fprint(os.Stderr, "\n", cmd.CheckHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.StatsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.FormatHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "check":
		err = cmd.Check(2)
	case "stats":
		err = cmd.Stats()
	case "format":
		err = cmd.Format()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		err = cmd.Check(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
