// Package main provides a profiling wrapper around bulk decoding to identify
// decoder hot spots.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"

	"github.com/zkvmlab/cairovm/insts"
)

var (
	mode = flag.String("mode", "cpu", "Profile mode: cpu or mem")
	n    = flag.Int("n", 50_000_000, "Number of words to decode")
)

func main() {
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.MemProfile).Stop()
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *mode)
		os.Exit(1)
	}

	decoder := insts.NewDecoder()

	// Exercise the collapsed-code branches as well as the straight paths.
	words := []uint64{
		0x0000800080008000, // nop
		0x4831800280008000, // assert_eq, res add
		0x4200800080008000, // assert_eq under jnz
		0x14A7800080008000, // call abs with imm
		0x2000800080008000, // ret
		0x0204800080008000, // jnz
	}

	var decoded int
	for i := 0; i < *n; i++ {
		if _, err := decoder.Decode(words[i%len(words)]); err != nil {
			fmt.Fprintf(os.Stderr, "decode error: %v\n", err)
			os.Exit(1)
		}
		decoded++
	}

	fmt.Printf("Decoded %d words\n", decoded)
}
