package switchgrid

import (
	"math/rand/v2"

	"github.com/gogpu/switchgrid/hud"
	"github.com/gogpu/switchgrid/puzzle"
	"github.com/gogpu/switchgrid/render"
)

// Option configures a Surface during creation.
//
// Example:
//
//	surface, err := switchgrid.New(target,
//	    switchgrid.WithSize(5),
//	    switchgrid.WithOnWin(func() { fmt.Println("solved") }),
//	)
type Option func(*config)

// config holds optional configuration for Surface creation.
type config struct {
	size       int
	seed       *uint64
	rng        *rand.Rand
	clock      puzzle.Clock
	rate       float32
	scene      render.SceneRenderer
	asset      string
	onWin      func()
	background render.Color
	camera     render.Camera
	overlay    *hud.Overlay
	noOverlay  bool
	hints      bool
}

// defaultConfig returns the default surface configuration.
func defaultConfig() config {
	return config{
		size:       puzzle.DefaultSize,
		rate:       puzzle.DefaultRate,
		background: render.DefaultBackground,
		camera:     render.DefaultCamera(),
	}
}

// WithSize sets the grid size N. It is fixed for the Surface's lifetime.
func WithSize(n int) Option {
	return func(c *config) { c.size = n }
}

// WithSeed seeds the board generator for reproducible games.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = &seed }
}

// WithRand uses r to deal boards. It takes precedence over WithSeed.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rng = r }
}

// WithClock replaces the wall clock driving the animation.
func WithClock(clock puzzle.Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithRate sets the animation speed in half turns per millisecond.
// Non-positive rates are ignored.
func WithRate(rate float32) Option {
	return func(c *config) {
		if rate > 0 {
			c.rate = rate
		}
	}
}

// WithScene replaces the built-in panel scene renderer.
func WithScene(r render.SceneRenderer) Option {
	return func(c *config) { c.scene = r }
}

// WithSceneAsset sets the asset path passed to the scene renderer's Init.
// The empty path selects the built-in scene.
func WithSceneAsset(path string) Option {
	return func(c *config) { c.asset = path }
}

// WithOnWin sets a callback fired once per game when it is solved.
func WithOnWin(fn func()) Option {
	return func(c *config) { c.onWin = fn }
}

// WithBackground sets the clear color of the visible attachment.
func WithBackground(bg render.Color) Option {
	return func(c *config) { c.background = bg }
}

// WithCamera replaces the default camera and light.
func WithCamera(cam render.Camera) Option {
	return func(c *config) { c.camera = cam }
}

// WithOverlay sets the status overlay drawn by Snapshot. Nil disables it.
func WithOverlay(o *hud.Overlay) Option {
	return func(c *config) {
		c.overlay = o
		c.noOverlay = o == nil
	}
}

// WithHints shows the solver's next suggested cell in the overlay.
func WithHints(enabled bool) Option {
	return func(c *config) { c.hints = enabled }
}
