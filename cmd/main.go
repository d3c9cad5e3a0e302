package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	app "github.com/richinsley/learngl/app"
	examples "github.com/richinsley/learngl/examples"
)

func init() {
	runtime.LockOSThread()
}

func usage() {
	fmt.Println("LearnOpenGL exercises")
	fmt.Println()
	fmt.Printf("usage: %s <exercise> [flags]\n", os.Args[0])
	fmt.Printf("       %s <exercise> -help\n\n", os.Args[0])
	fmt.Println("exercises:")
	for _, ex := range examples.All {
		fmt.Printf("  %-28s %s\n", ex.Name, ex.Title)
	}
}

func main() {
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		usage()
		return
	}

	ex, ok := examples.Lookup(os.Args[1])
	if !ok {
		log.Fatalf("Unknown exercise %q (known: %s)", os.Args[1], strings.Join(examples.Names(), ", "))
	}
	if err := app.Run(ex, os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", ex.Name, err)
	}
}
