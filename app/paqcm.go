/*
Copyright 2011-2026 Frederic Langlet
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	kanzi "github.com/txrx-dev/paqcm"
)

const (
	_APP_VERSION = "1.0"
	_APP_HEADER  = "paqcm " + _APP_VERSION + " (c) Frederic Langlet"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	argsMap := make(map[string]any)
	mode, status := processCommandLine(args, argsMap)

	if status != 0 {
		return status
	}

	if mode == "" {
		// -h/-V already handled inside processCommandLine
		return 0
	}

	if mode == "c" {
		return compress(argsMap)
	}

	return decompress(argsMap)
}

func compress(argsMap map[string]any) int {
	verbose := argsMap["verbosity"].(uint)

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("An unexpected error occurred during compression: %v\n", r)
		}
	}()

	c, err := NewCompressor(argsMap)

	if err != nil {
		fmt.Printf("Failed to create compressor: %v\n", err)
		return kanzi.ERR_CREATE_COMPRESSOR
	}

	if verbose > 2 {
		if listener, err2 := NewInfoPrinter(verbose, os.Stdout); err2 == nil {
			c.AddListener(listener)
		}
	}

	code, _ := c.Compress()
	return code
}

func decompress(argsMap map[string]any) int {
	verbose := argsMap["verbosity"].(uint)

	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("An unexpected error occurred during decompression: %v\n", r)
		}
	}()

	d, err := NewDecompressor(argsMap)

	if err != nil {
		fmt.Printf("Failed to create decompressor: %v\n", err)
		return kanzi.ERR_CREATE_DECOMPRESSOR
	}

	if verbose > 2 {
		if listener, err2 := NewInfoPrinter(verbose, os.Stdout); err2 == nil {
			d.AddListener(listener)
		}
	}

	code, _ := d.Decompress()
	return code
}

// processCommandLine parses the flags described in the external interface:
// -c/--compress, -d/--decompress, -0..-9 (memory level, implies compress),
// -h/--help, -V/--version, -v/--verbose, plus the positional <infile>
// <outfile>. Returns the mode ("c", "d", or "" for help/version) and an
// exit status (non-zero on a parsing error).
func processCommandLine(args []string, argsMap map[string]any) (string, int) {
	mode := ""
	level := uint(3)
	levelSet := false
	verbose := false
	positional := make([]string, 0, 2)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "-h" || arg == "--help":
			printHelp()
			return "", 0

		case arg == "-V" || arg == "--version":
			fmt.Println(_APP_HEADER)
			return "", 0

		case arg == "-v" || arg == "--verbose":
			verbose = true

		case arg == "-c" || arg == "--compress":
			mode = "c"

		case arg == "-d" || arg == "--decompress":
			mode = "d"

		case len(arg) == 2 && arg[0] == '-' && arg[1] >= '0' && arg[1] <= '9':
			lvl, err := strconv.Atoi(arg[1:])

			if err != nil {
				fmt.Printf("Invalid memory level: %s\n", arg)
				return "", kanzi.ERR_INVALID_PARAM
			}

			level = uint(lvl)
			levelSet = true

			if mode == "" {
				mode = "c"
			}

		case strings.HasPrefix(arg, "-"):
			fmt.Printf("Unknown option: %s\n", arg)
			return "", kanzi.ERR_MISSING_PARAM

		default:
			positional = append(positional, arg)
		}
	}

	if mode == "" {
		mode = "c"
	}

	if len(positional) != 2 {
		fmt.Println("Expected exactly two positional arguments: <infile> <outfile>")
		printHelp()
		return "", kanzi.ERR_MISSING_PARAM
	}

	inputName, outputName := positional[0], positional[1]

	if strings.EqualFold(inputName, outputName) {
		fmt.Println("The input and output file names must differ")
		return "", kanzi.ERR_CREATE_FILE
	}

	if !levelSet {
		level = 3
	}

	argsMap["inputName"] = inputName
	argsMap["outputName"] = outputName
	argsMap["level"] = level
	argsMap["overwrite"] = true

	verbosity := uint(1)

	if verbose {
		verbosity = 3
	}

	argsMap["verbosity"] = verbosity

	return mode, 0
}

func printHelp() {
	fmt.Println()
	fmt.Println(_APP_HEADER)
	fmt.Println()
	fmt.Println("Usage: paqcm [-c|-d] [-0..-9] [-v] [-h] [-V] <infile> <outfile>")
	fmt.Println()
	fmt.Println("   -c, --compress      Encode <infile> to <outfile> (default mode)")
	fmt.Println("   -d, --decompress    Decode <infile> to <outfile>")
	fmt.Println("   -0 .. -9            Memory level (also implies compress)")
	fmt.Println("   -v, --verbose       Verbose mode")
	fmt.Println("   -h, --help          Display this message")
	fmt.Println("   -V, --version       Display version")
}
