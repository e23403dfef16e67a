package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"eeasm/compiler"
	"eeasm/output"
	"eeasm/textio"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("error: eeasm needs an input file, e.g. eeasm -m pnach -f 2 patch.asm")
	}

	io := textio.FileIO{}
	mode := output.PS2
	addressFormat := "-"
	encodingName := textio.ISO88591
	outputPath := ""
	verbose := false
	noColor := false
	var inputPath string

	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch arg {
		case "-m", "--mode":
			if len(os.Args) == i+1 {
				log.Fatal("error: -m requires a mode argument (ps2 or pnach)")
			}
			i++
			mode = parseMode(os.Args[i])
		case "-o", "--output":
			if len(os.Args) == i+1 {
				log.Fatal("error: -o requires a path argument")
			}
			i++
			outputPath = os.Args[i]
		case "-f", "--address-format":
			if len(os.Args) == i+1 {
				log.Fatal("error: -f requires a single-character argument")
			}
			i++
			addressFormat = os.Args[i]
		case "-e", "--encoding":
			if len(os.Args) == i+1 {
				log.Fatal("error: -e requires an encoding name argument")
			}
			i++
			encodingName = os.Args[i]
		case "-v", "--verbose":
			verbose = true
		case "-c", "--no-color":
			noColor = true
		default:
			if inputPath != "" {
				log.Fatalf("error: unexpected extra argument %q (input was already %q)", arg, inputPath)
			}
			inputPath = arg
		}
	}

	if inputPath == "" {
		log.Fatal("error: no input file given")
	}
	if outputPath == "" {
		outputPath = deriveOutputPath(inputPath, mode)
	}
	if noColor {
		pp.ColoringEnabled = false
	}

	lines, err := io.ReadAllLines(inputPath, encodingName)
	if err != nil {
		log.Fatalf("error: reading %s: %v", inputPath, err)
	}

	driver := compiler.NewDriver(io)
	driver.Verbose = verbose
	result := driver.Compile(lines, inputPath, mode, addressFormat)

	if verbose {
		traceResult(result)
	}

	if !result.Success {
		colorEnabled := !noColor && isatty.IsTerminal(os.Stderr.Fd())
		if colorEnabled {
			log.SetOutput(colorable.NewColorable(os.Stderr))
		} else {
			log.SetOutput(os.Stderr)
		}
		for _, e := range result.Errors {
			logError(e, colorEnabled)
		}
		os.Exit(1)
	}

	if err := io.WriteAll(outputPath, result.Output, textio.UTF8); err != nil {
		log.Fatalf("error: writing %s: %v", outputPath, err)
	}
}

func parseMode(s string) output.Mode {
	switch strings.ToLower(s) {
	case "ps2":
		return output.PS2
	case "pnach":
		return output.PNACH
	default:
		log.Fatalf("error: unknown mode %q (want ps2 or pnach)", s)
		return output.PS2
	}
}

// deriveOutputPath swaps the input's extension for the mode's conventional
// one, mirroring the "find the last dot, replace the tail" approach other
// assembler front ends in this toolchain use for output naming.
func deriveOutputPath(inputPath string, mode output.Mode) string {
	ext := ".txt"
	if mode == output.PNACH {
		ext = ".pnach"
	}
	if dot := strings.LastIndex(inputPath, "."); dot >= 0 {
		return inputPath[:dot] + ext
	}
	return inputPath + ext
}

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func logError(e compiler.ErrorRecord, colorEnabled bool) {
	addr := "N/A"
	if e.HasAddress {
		addr = fmt.Sprintf("%08X", e.Address)
	}
	msg := fmt.Sprintf("%s:%d [%s]: %s", e.File, e.Line, addr, e.Message)
	if colorEnabled {
		msg = ansiRed + msg + ansiReset
	}
	log.Print(msg)
}

func traceResult(r compiler.CompilationResult) {
	pp.Println(r)
}
