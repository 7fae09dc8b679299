package renderer

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// directionTracer colors a ray by its direction, plus a random term so that
// sampler streams show up in the output
type directionTracer struct {
	useSampler bool
}

func (d directionTracer) RayColor(ray core.Ray, sampler core.Sampler, stats *core.RayStats) core.Vec3 {
	stats.PrimaryRays++
	color := ray.Direction.Add(core.NewVec3(1, 1, 1)).Multiply(100)
	if d.useSampler {
		color = color.Add(core.Gray(sampler.Get2D().X * 50))
	}
	return color
}

// panicTracer panics on rays pointing into the top-left quadrant
type panicTracer struct{}

func (panicTracer) RayColor(ray core.Ray, sampler core.Sampler, stats *core.RayStats) core.Vec3 {
	if ray.Direction.X < -0.1 && ray.Direction.Y > 0.1 {
		panic("shading failure")
	}
	return core.Vec3{}
}

// countingSink records how many times each pixel is written
type countingSink struct {
	width, height int
	writes        []atomic.Int32
}

func newCountingSink(width, height int) *countingSink {
	return &countingSink{width: width, height: height, writes: make([]atomic.Int32, width*height)}
}

func (s *countingSink) WritePixel(col, row int, color core.Vec3) {
	s.writes[row*s.width+col].Add(1)
}

func (s *countingSink) Width() int  { return s.width }
func (s *countingSink) Height() int { return s.height }

func vec(x, y, z float64) *core.Vec3 {
	v := core.NewVec3(x, y, z)
	return &v
}

func testCameraConfig(sink ImageSink, tracer RayTracer) CameraConfig {
	return CameraConfig{
		Location:          vec(0, 0, 0),
		Forward:           vec(0, 0, -1),
		Up:                vec(0, -1, 0),
		ViewPlaneWidth:    6,
		ViewPlaneHeight:   6,
		ViewPlaneDistance: 10,
		Sink:              sink,
		Integrator:        tracer,
	}
}

func TestNewCamera_MissingConfiguration(t *testing.T) {
	tests := []struct {
		field  string
		modify func(*CameraConfig)
	}{
		{"Location", func(c *CameraConfig) { c.Location = nil }},
		{"Forward", func(c *CameraConfig) { c.Forward = nil }},
		{"Up", func(c *CameraConfig) { c.Up = nil }},
		{"ViewPlaneWidth", func(c *CameraConfig) { c.ViewPlaneWidth = 0 }},
		{"ViewPlaneHeight", func(c *CameraConfig) { c.ViewPlaneHeight = 0 }},
		{"ViewPlaneDistance", func(c *CameraConfig) { c.ViewPlaneDistance = 0 }},
		{"Sink", func(c *CameraConfig) { c.Sink = nil }},
		{"Integrator", func(c *CameraConfig) { c.Integrator = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			config := testCameraConfig(NewImageBuffer(3, 3), directionTracer{})
			tt.modify(&config)

			_, err := NewCamera(config)
			if !errors.Is(err, ErrMissingConfiguration) {
				t.Fatalf("Expected ErrMissingConfiguration, got %v", err)
			}
			var missing *MissingConfigurationError
			if !errors.As(err, &missing) || missing.Field != tt.field {
				t.Errorf("Expected missing field %s, got %v", tt.field, err)
			}
		})
	}
}

func TestNewCamera_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*CameraConfig)
		expected error
	}{
		{"not perpendicular", func(c *CameraConfig) { c.Up = vec(0, 1, -1) }, ErrInvalidConfiguration},
		{"zero forward", func(c *CameraConfig) { c.Forward = vec(0, 0, 0) }, core.ErrInvalidGeometry},
		{"negative width", func(c *CameraConfig) { c.ViewPlaneWidth = -1 }, ErrInvalidConfiguration},
		{"negative threads", func(c *CameraConfig) { c.Threads = -2 }, ErrInvalidConfiguration},
		{"negative sample grid", func(c *CameraConfig) { c.SampleGrid = -1 }, ErrInvalidConfiguration},
		{"negative debug interval", func(c *CameraConfig) { c.DebugInterval = -1 }, ErrInvalidConfiguration},
		{"empty sink", func(c *CameraConfig) { c.Sink = NewImageBuffer(0, 0) }, ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig(NewImageBuffer(3, 3), directionTracer{})
			tt.modify(&config)

			if _, err := NewCamera(config); !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestCamera_ConstructRay(t *testing.T) {
	tests := []struct {
		name      string
		size      float64
		res       int
		col, row  int
		direction core.Vec3
	}{
		{"3x3 center", 6, 3, 1, 1, core.NewVec3(0, 0, -10)},
		{"3x3 upper side", 6, 3, 1, 0, core.NewVec3(0, -2, -10)},
		{"3x3 left side", 6, 3, 0, 1, core.NewVec3(2, 0, -10)},
		{"3x3 corner", 6, 3, 0, 0, core.NewVec3(2, -2, -10)},
		{"4x4 center", 8, 4, 1, 1, core.NewVec3(1, -1, -10)},
		{"4x4 side", 8, 4, 1, 0, core.NewVec3(1, -3, -10)},
		{"4x4 corner", 8, 4, 0, 0, core.NewVec3(3, -3, -10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testCameraConfig(NewImageBuffer(tt.res, tt.res), directionTracer{})
			config.ViewPlaneWidth = tt.size
			config.ViewPlaneHeight = tt.size

			camera, err := NewCamera(config)
			if err != nil {
				t.Fatalf("NewCamera failed: %v", err)
			}

			ray := camera.ConstructRay(tt.res, tt.res, tt.col, tt.row)
			expected := tt.direction.Normalize()
			if ray.Origin != core.NewVec3(0, 0, 0) {
				t.Errorf("Expected ray from the camera location, got %v", ray.Origin)
			}
			if ray.Direction.Subtract(expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
			}
		})
	}
}

// renderBuffer renders a 16x12 image and returns the buffer
func renderBuffer(t *testing.T, threads, sampleGrid int) (*ImageBuffer, RenderStats) {
	t.Helper()

	buffer := NewImageBuffer(16, 12)
	config := testCameraConfig(buffer, directionTracer{useSampler: true})
	config.Threads = threads
	config.SampleGrid = sampleGrid
	config.Seed = 1234

	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	stats, err := camera.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buffer, stats
}

func TestCamera_RenderThreadsMatchSynchronous(t *testing.T) {
	for _, sampleGrid := range []int{1, 3} {
		reference, _ := renderBuffer(t, 0, sampleGrid)
		referenceImage := reference.Image(1)

		for _, threads := range []int{1, 4, 7} {
			buffer, stats := renderBuffer(t, threads, sampleGrid)
			if stats.Workers != threads {
				t.Errorf("Expected %d workers, got %d", threads, stats.Workers)
			}

			img := buffer.Image(1)
			for i := range img.Pix {
				if img.Pix[i] != referenceImage.Pix[i] {
					t.Fatalf("grid %d, threads %d: byte %d differs from synchronous render", sampleGrid, threads, i)
				}
			}
		}
	}
}

func TestCamera_RenderWritesEachPixelOnce(t *testing.T) {
	for _, threads := range []int{0, 1, 4, 7} {
		sink := newCountingSink(19, 13)
		config := testCameraConfig(sink, directionTracer{useSampler: true})
		config.Threads = threads
		config.SampleGrid = 2

		camera, err := NewCamera(config)
		if err != nil {
			t.Fatalf("NewCamera failed: %v", err)
		}
		if _, err := camera.Render(); err != nil {
			t.Fatalf("threads %d: Render failed: %v", threads, err)
		}

		for i := range sink.writes {
			if n := sink.writes[i].Load(); n != 1 {
				t.Errorf("threads %d: pixel (%d,%d) written %d times", threads, i%sink.width, i/sink.width, n)
			}
		}
	}
}

func TestCamera_RenderStats(t *testing.T) {
	_, stats := renderBuffer(t, 3, 2)

	if stats.TotalPixels != 16*12 {
		t.Errorf("Expected %d pixels, got %d", 16*12, stats.TotalPixels)
	}
	if stats.SamplesPerPixel != 4 {
		t.Errorf("Expected 4 samples per pixel, got %d", stats.SamplesPerPixel)
	}
	if stats.Rays.PrimaryRays != 16*12*4 {
		t.Errorf("Expected %d primary rays merged from workers, got %d", 16*12*4, stats.Rays.PrimaryRays)
	}
}

func TestCamera_RenderWorkerPanic(t *testing.T) {
	for _, threads := range []int{0, 4} {
		buffer := NewImageBuffer(10, 10)
		config := testCameraConfig(buffer, panicTracer{})
		config.Up = vec(0, 1, 0)
		config.Threads = threads

		camera, err := NewCamera(config)
		if err != nil {
			t.Fatalf("NewCamera failed: %v", err)
		}

		stats, err := camera.Render()
		if err == nil {
			t.Fatalf("threads %d: expected render error from panicking tracer", threads)
		}
		if stats.TotalPixels >= 100 {
			t.Errorf("threads %d: expected an aborted render, got %d pixels", threads, stats.TotalPixels)
		}
	}
}

func TestCamera_PrintGrid(t *testing.T) {
	buffer := NewImageBuffer(5, 5)
	camera, err := NewCamera(testCameraConfig(buffer, directionTracer{}))
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}

	gridColor := core.NewVec3(255, 255, 0)
	if err := camera.PrintGrid(2, gridColor); err != nil {
		t.Fatalf("PrintGrid failed: %v", err)
	}

	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			onGrid := row%2 == 0 || col%2 == 0
			if got := buffer.Pixel(col, row); (got == gridColor) != onGrid {
				t.Errorf("Pixel (%d,%d): grid=%t, color %v", col, row, onGrid, got)
			}
		}
	}

	if err := camera.PrintGrid(0, gridColor); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for zero interval, got %v", err)
	}
}

func TestImageBuffer_Image(t *testing.T) {
	buffer := NewImageBuffer(2, 1)
	buffer.WritePixel(0, 0, core.NewVec3(300, -5, 127.5))
	buffer.WritePixel(1, 0, core.NewVec3(63.75, 0, 255))

	img := buffer.Image(1)
	tests := []struct {
		col      int
		expected [4]uint8
	}{
		{0, [4]uint8{255, 0, 128, 255}},
		{1, [4]uint8{64, 0, 255, 255}},
	}
	for _, tt := range tests {
		c := img.RGBAAt(tt.col, 0)
		if got := [4]uint8{c.R, c.G, c.B, c.A}; got != tt.expected {
			t.Errorf("Pixel %d: expected %v, got %v", tt.col, tt.expected, got)
		}
	}

	// Gamma 2 brightens a quarter-intensity channel to half
	gamma := buffer.Image(2).RGBAAt(1, 0)
	if math.Abs(float64(gamma.R)-128) > 1 {
		t.Errorf("Expected gamma-corrected red near 128, got %d", gamma.R)
	}
}
