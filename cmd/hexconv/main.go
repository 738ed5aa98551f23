// Command hexconv converts integers between "0x" hex and decimal.
//
//	hexconv 0x52B7D2DCC80CD2E4000000 100000000
//	hexconv -json 0x1312d00
//
// Arguments starting with "0x" are read as hex, anything else as decimal.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"hexint-tracker/common"
	"hexint-tracker/types"
)

type result struct {
	Input   string          `json:"input"`
	Decimal string          `json:"decimal"`
	Hex     types.HexBigInt `json:"hex"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("hexconv", flag.ContinueOnError)
	flags.SetOutput(stderr)
	asJSON := flags.Bool("json", false, "print results as a json array")
	upper := flags.Bool("upper", false, "print upper-case hex digits in the table")
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: hexconv [-json] [-upper] <0x... | decimal>...")
		return 2
	}

	codec := common.LowerHex
	if *upper {
		codec = common.UpperHex
	}

	results := make([]result, 0, flags.NArg())
	rows := make([][]string, 0, flags.NArg())
	failed := false
	for _, arg := range flags.Args() {
		v, err := common.ParseQuantity(arg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			failed = true
			continue
		}
		results = append(results, result{Input: arg, Decimal: v.String(), Hex: types.NewHexBigInt(v)})
		rows = append(rows, []string{arg, common.FormatDecimal(v), codec.Encode(v)})
	}

	if *asJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
	} else if len(rows) > 0 {
		table := tablewriter.NewTable(stdout,
			tablewriter.WithHeaderAutoFormat(tw.Off),
		)
		table.Header([]string{"Input", "Decimal", "Hex"})
		_ = table.Bulk(rows)
		_ = table.Render()
	}

	if failed {
		return 1
	}
	return 0
}
