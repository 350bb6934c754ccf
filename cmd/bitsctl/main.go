// Command bitsctl decodes BITS transmissions.
//
// A transmission is one line of uppercase hex encoding a tree of packets.
// bitsctl decodes it and prints the sum of all packet versions, the value
// of the expression the tree encodes, or a dump of the tree itself.
//
// Usage:
//
//	bitsctl <command> [flags] [hex]
//
// Examples:
//
//	# Both answers for a puzzle input file
//	bitsctl run -input inputs/day16.txt
//
//	# Evaluate a literal transmission
//	bitsctl eval 9C0141080250320F1802104A08
//
//	# Dump the packet tree as YAML
//	bitsctl dump -format yaml -hex 38006F45291200
//
//	# Turn a CBOR tree dump back into a transmission
//	bitsctl dump -format cbor -hex 38006F45291200 > tree.cbor
//	bitsctl encode -cbor tree.cbor
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/observability"
)

const usage = `bitsctl - BITS transmission decoder

Usage:
  bitsctl <command> [flags] [hex]

Commands:
  run       Print the version sum (part1) and the expression value (part2)
  versions  Print the sum of all packet versions
  eval      Print the value of the expression
  dump      Print the packet tree (text, expr, json, yaml, cbor)
  encode    Re-encode the decoded tree as hex (or a CBOR dump with -cbor)

Use "bitsctl <command> -help" for more information about a command.
`

func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("bitsctl")
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 1
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "run", "versions", "eval", "dump", "encode":
		err = runCommand(cmd, rest, stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "bitsctl: unknown command %q\n\n%s", cmd, usage)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "bitsctl: %v\n", err)
		return 1
	}
	return 0
}
