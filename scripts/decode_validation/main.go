// Validate decode throughput - measures allocations of register decoding and dump parsing
package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/pmicdump/codec"
	"github.com/sarchlab/pmicdump/dump"
	"github.com/sarchlab/pmicdump/regmap"
)

func main() {
	defs := regmap.Generated()

	// Registers that exercise special, field and raw decoding
	swa := defs.Lookup(0x21)    // SwaVoltage
	mode := defs.Lookup(0x2C)   // SwitchingDual
	rev := defs.Lookup(0x3B)    // MAJOR | MINOR fields
	vendor := defs.Lookup(0x3C) // no fields

	// Warm up
	for i := 0; i < 1000; i++ {
		codec.DecodeRegister(swa, byte(i))
	}

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	for i := 0; i < iterations; i++ {
		raw := byte(i)
		codec.DecodeRegister(swa, raw)
		codec.DecodeRegister(mode, raw)
		codec.DecodeRegister(rev, raw)
		codec.DecodeRegister(vendor, raw)
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * 4
	allocations := m2.Mallocs - m1.Mallocs

	fmt.Printf("Decode Validation Results:\n")
	fmt.Printf("==========================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))

	// Full dump parses
	data := make([]byte, dump.Size)
	for i := range data {
		data[i] = byte(i * 7)
	}

	parses := 2000
	start = time.Now()
	for i := 0; i < parses; i++ {
		if _, err := dump.Parse(context.Background(), data, defs); err != nil {
			fmt.Printf("\nparse failed: %v\n", err)
			return
		}
	}
	elapsed = time.Since(start)

	fmt.Printf("\nDump parses: %d\n", parses)
	fmt.Printf("Time per parse: %v\n", elapsed/time.Duration(parses))
	fmt.Printf("Workers: %d\n", runtime.GOMAXPROCS(0))

	if elapsed/time.Duration(parses) < time.Millisecond {
		fmt.Printf("\n✅ GOOD: Parse under 1ms\n")
	} else {
		fmt.Printf("\n⚠️  WARNING: Parse slower than 1ms\n")
	}
}
