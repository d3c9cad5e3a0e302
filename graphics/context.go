package graphics

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	// EndFrame swaps the back buffer and polls window events.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
}
