package main

import (
	"runtime"

	"github.com/richinsley/learngl/app"
	"github.com/richinsley/learngl/examples"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	app.Main(examples.CoordinateSystems)
}
