// Command benchmark measures decode throughput over a generated stream of
// valid instruction words.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-n     Number of words to decode (default 10000000)
//	-csv   Output results in CSV format (default: human-readable)
//
// Example:
//
//	# Human-readable throughput report
//	go run ./cmd/benchmark
//
//	# CSV for spreadsheet comparison across decoder changes
//	go run ./cmd/benchmark -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/zkvmlab/cairovm/insts"
)

// flagSets covers every opcode class plus the overloaded zero-code paths.
var flagSets = []uint16{
	0x0000, // nop
	0x4831, // assert_eq, res add, ap++
	0x4200, // assert_eq under jnz, collapsed codes
	0x14A7, // call abs, imm op1
	0x1104, // call rel
	0x2000, // ret
	0x0204, // jnz
	0x0110, // jmp rel
}

func main() {
	n := flag.Int("n", 10_000_000, "Number of words to decode")
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	flag.Parse()

	words := make([]uint64, len(flagSets)*16)
	for i := range words {
		flags := flagSets[i%len(flagSets)]
		off := uint16(0x8000 + i - len(words)/2)
		words[i] = uint64(flags)<<48 |
			uint64(off)<<32 | uint64(off)<<16 | uint64(off)
	}

	decoder := insts.NewDecoder()

	start := time.Now()
	for i := 0; i < *n; i++ {
		if _, err := decoder.Decode(words[i%len(words)]); err != nil {
			fmt.Fprintf(os.Stderr, "decode error: %v\n", err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	perSec := float64(*n) / elapsed.Seconds()
	if *csvOutput {
		fmt.Printf("words,elapsed_ns,words_per_sec\n")
		fmt.Printf("%d,%d,%.0f\n", *n, elapsed.Nanoseconds(), perSec)
	} else {
		fmt.Printf("Decoded %d words in %v\n", *n, elapsed)
		fmt.Printf("Throughput: %.2f Mwords/s\n", perSec/1e6)
	}
}
