// Command disasm decodes hex-encoded Cairo instruction words and prints
// their assembly form.
//
// Words come from the command line or, with -input, one per line from a
// file ("-" for stdin). Blank lines and "#" comments are skipped.
//
// Example:
//
//	disasm 0x14A7800080008000 0x0000800080008000
//	disasm -input words.txt -fields
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/zkvmlab/cairovm/insts"
)

func main() {
	app := &cli.App{
		Name:      "disasm",
		Usage:     "decode Cairo instruction words",
		ArgsUsage: "[word ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "read words from `FILE`, one per line (\"-\" for stdin)",
			},
			&cli.BoolFlag{
				Name:  "fields",
				Usage: "print decoded fields instead of assembly",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "disasm: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	words := ctx.Args().Slice()

	if path := ctx.String("input"); path != "" {
		fileWords, err := readWords(path)
		if err != nil {
			return err
		}
		words = append(words, fileWords...)
	}

	if len(words) == 0 {
		return cli.ShowAppHelp(ctx)
	}

	decoder := insts.NewDecoder()
	for _, w := range words {
		word, err := parseWord(w)
		if err != nil {
			return err
		}

		inst, err := decoder.Decode(word)
		if err != nil {
			return fmt.Errorf("decode %#016x: %w", word, err)
		}

		if ctx.Bool("fields") {
			printFields(word, inst)
		} else {
			fmt.Printf("%#016x  %s\n", word, inst.Disassemble())
		}
	}

	return nil
}

func readWords(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

func parseWord(s string) (uint64, error) {
	word, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("not a 64-bit hex word: %q", s)
	}
	return word, nil
}

func printFields(word uint64, inst *insts.Instruction) {
	fmt.Printf("%#016x\n", word)
	fmt.Printf("  off0=%d off1=%d off2=%d size=%d\n",
		inst.Off0, inst.Off1, inst.Off2, inst.Size())
	fmt.Printf("  dst_reg=%v op0_reg=%v op1_src=%v res=%v\n",
		inst.DstReg, inst.Op0Reg, inst.Op1Src, inst.Res)
	fmt.Printf("  pc_update=%v ap_update=%v fp_update=%v opcode=%v\n",
		inst.PcUpdate, inst.ApUpdate, inst.FpUpdate, inst.Opcode)
}
