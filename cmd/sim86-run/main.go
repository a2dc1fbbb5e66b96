package main

import (
	"fmt"
	"log"

	"github.com/hexaflex/sim86/sim"
)

func main() {
	config := parseArgs()

	program, err := sim.ParseFile(config.Program)
	if err != nil {
		log.Fatal(err)
	}

	var trace sim.TraceFunc
	if config.PrintTrace {
		trace = func(ip int, instr *sim.Instruction) {
			fmt.Printf("ip: %d, instruction: %s\n", ip, instr)
		}
	}

	cpu := sim.New(trace)
	cpu.Load(program)

	err = cpu.Run(config.MaxSteps)
	fmt.Print(cpu)
	if err != nil {
		log.Fatal(err)
	}
}
