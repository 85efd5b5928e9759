package main

import (
	"fmt"
	"os"

	"cltmm/src/cmd"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "dh":
		err = cmd.DHCommand(args)
	case "product":
		err = cmd.ProductCommand(args)
	case "timing":
		err = cmd.TimingCommand(args)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("cltmm - CLT-style graded encoding scheme demos\n\n")
	fmt.Printf("Usage:\n")
	fmt.Printf("  %s <command> [options]\n\n", os.Args[0])
	fmt.Printf("Commands:\n")
	fmt.Printf("  dh          Run the multipartite Diffie-Hellman demo\n")
	fmt.Printf("  product     Run the sequential product/extract demo\n")
	fmt.Printf("  timing      Time key setup and report a derived session key\n")
	fmt.Printf("  help        Show this help message\n\n")
	fmt.Printf("Examples:\n")
	fmt.Printf("  %s dh --instantiation Small\n", os.Args[0])
	fmt.Printf("  %s product --instantiation Toy\n", os.Args[0])
	fmt.Printf("  %s timing --instantiation Medium\n", os.Args[0])
	fmt.Printf("\nFor detailed help on a command, use:\n")
	fmt.Printf("  %s <command> --help\n", os.Args[0])
}
