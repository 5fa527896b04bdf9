package switchgrid

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/switchgrid/hud"
	"github.com/gogpu/switchgrid/pick"
	"github.com/gogpu/switchgrid/puzzle"
	"github.com/gogpu/switchgrid/render"
	"github.com/gogpu/switchgrid/scene"
)

// Errors returned by Surface.
var (
	ErrNilTarget = errors.New("switchgrid: nil target")
	ErrClosed    = errors.New("switchgrid: surface closed")
)

// State is the animation state of a Surface.
type State int

const (
	// Idle means every panel is at rest.
	Idle State = iota
	// Animating means at least one panel is still turning.
	Animating
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Animating:
		return "Animating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// cellLocator is implemented by scene renderers that can place a cell in
// world space.
type cellLocator interface {
	CellCenter(id int) (mgl32.Vec3, bool)
}

// Surface drives one game: it owns the puzzle session, renders it through
// a scene renderer into a render target and resolves picks.
//
// The host calls Synchronize and then Render once per frame, and schedules
// another frame while Render reports that animation continues.
//
// Surface is not safe for concurrent use.
type Surface struct {
	cfg     config
	target  render.Target
	scene   render.SceneRenderer
	session *puzzle.Session
	overlay *hud.Overlay

	width, height int

	// frame is rebuilt when the output size changes.
	frame          *render.Frame
	frameW, frameH int

	started     bool
	winReported bool
	closed      bool
}

// New creates a surface that renders into target. The surface owns the
// target; call Close to release it.
func New(target render.Target, opts ...Option) (*Surface, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var sessOpts []puzzle.SessionOption
	if cfg.seed != nil {
		sessOpts = append(sessOpts, puzzle.WithSeed(*cfg.seed))
	}
	if cfg.rng != nil {
		sessOpts = append(sessOpts, puzzle.WithRand(cfg.rng))
	}
	if cfg.clock != nil {
		sessOpts = append(sessOpts, puzzle.WithClock(cfg.clock))
	}
	session, err := puzzle.NewSession(cfg.size, sessOpts...)
	if err != nil {
		return nil, fmt.Errorf("switchgrid: %w", err)
	}

	sr := cfg.scene
	if sr == nil {
		sr = scene.NewPanelScene()
	}

	overlay := cfg.overlay
	if overlay == nil && !cfg.noOverlay {
		if overlay, err = hud.New(); err != nil {
			return nil, fmt.Errorf("switchgrid: %w", err)
		}
	}

	s := &Surface{
		cfg:     cfg,
		target:  target,
		scene:   sr,
		session: session,
		overlay: overlay,
	}
	liveSurfaces.Store(s, struct{}{})
	propagateLogger(target, Logger())
	Logger().Info("switchgrid: surface created", "size", cfg.size)
	return s, nil
}

// Session returns the puzzle session.
func (s *Surface) Session() *puzzle.Session {
	return s.session
}

// Target returns the render target.
func (s *Surface) Target() render.Target {
	return s.target
}

// Resize sets the output size. The target is recreated by the next Render.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

// Size returns the output size set by Resize.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// State reports whether panels are still turning.
func (s *Surface) State() State {
	if s.session.Grid().Animating() {
		return Animating
	}
	return Idle
}

// Render advances the animation by the time elapsed since the previous
// frame and draws it. It returns true while animation is in progress; the
// host should then schedule another frame. A zero output size draws
// nothing but still advances the animation.
func (s *Surface) Render() (needsMoreFrames bool, err error) {
	if s.closed {
		return false, ErrClosed
	}
	if !s.started || !s.scene.Valid() {
		if err := s.scene.Init(s.cfg.asset, s.cfg.size); err != nil {
			return false, fmt.Errorf("switchgrid: init scene: %w", err)
		}
		s.session.RestartClock()
		s.started = true
	}

	grid := s.session.Grid()
	more := grid.Advance(s.session.Tick(), s.cfg.rate)

	if s.width <= 0 || s.height <= 0 {
		if err := s.target.Resize(0, 0); err != nil {
			return false, fmt.Errorf("switchgrid: release target: %w", err)
		}
		return more, nil
	}
	if s.target.Width() != s.width || s.target.Height() != s.height {
		if err := s.target.Resize(s.width, s.height); err != nil {
			return false, fmt.Errorf("switchgrid: resize target: %w", err)
		}
	}

	if err := s.scene.Draw(s.target, s.currentFrame(), grid.Current); err != nil {
		return false, fmt.Errorf("switchgrid: draw: %w", err)
	}
	return more, nil
}

// currentFrame returns the frame uniforms for the current output size.
func (s *Surface) currentFrame() *render.Frame {
	if s.frame == nil || s.frameW != s.width || s.frameH != s.height {
		s.frame = s.cfg.camera.Frame(s.width, s.height, s.cfg.background)
		s.frameW, s.frameH = s.width, s.height
	}
	return s.frame
}

// Synchronize applies pending input. A pending pick is resolved through the
// target's object-ID attachment and applied to the puzzle; picks arriving
// after a win are discarded. A pending new-game request resets the board.
// Call it before Render.
func (s *Surface) Synchronize(in Input) error {
	if s.closed {
		return ErrClosed
	}
	if in == nil {
		return nil
	}

	if x, y, ok := in.TakePick(); ok && x > 0 && y > 0 {
		if err := s.applyPick(x, y); err != nil {
			return err
		}
		s.session.RestartClock()
	}

	if in.TakeNewGame() {
		s.session.Reset()
		s.winReported = false
		Logger().Info("switchgrid: new game", "size", s.cfg.size)
	}
	return nil
}

func (s *Surface) applyPick(x, y int) error {
	if s.session.Won() {
		Logger().Debug("switchgrid: pick after win ignored", "x", x, "y", y)
		return nil
	}
	id, err := s.ResolvePick(x, y)
	if err != nil {
		return err
	}
	if !s.session.Grid().Contains(id) {
		Logger().Debug("switchgrid: pick missed", "x", x, "y", y, "id", id)
		return nil
	}

	won, err := s.session.ApplyPick(id)
	if err != nil {
		return fmt.Errorf("switchgrid: %w", err)
	}
	Logger().Debug("switchgrid: pick", "x", x, "y", y, "cell", id, "moves", s.session.Moves())
	if won && !s.winReported {
		s.winReported = true
		Logger().Info("switchgrid: solved", "moves", s.session.Moves())
		if s.cfg.onWin != nil {
			s.cfg.onWin()
		}
	}
	return nil
}

// ResolvePick decodes the object ID under framebuffer coordinates (x, y),
// or pick.None.
func (s *Surface) ResolvePick(x, y int) (int, error) {
	if s.closed {
		return pick.None, ErrClosed
	}
	id, err := s.target.ReadObjectID(x, y)
	if err != nil {
		return pick.None, fmt.Errorf("switchgrid: resolve pick: %w", err)
	}
	return id, nil
}

// Hint returns the first cell of a solution for the current board, or -1
// when the board is already solved. It returns puzzle.ErrUnsolvable when
// no sequence of picks solves the board.
func (s *Surface) Hint() (int, error) {
	picks, err := puzzle.Solve(s.session.Grid())
	if err != nil {
		return -1, err
	}
	if len(picks) == 0 {
		return -1, nil
	}
	return picks[0], nil
}

// CellCenter projects the center of cell id to framebuffer coordinates for
// the current output size. ok is false before the first Render, for an
// unknown cell, or when the scene renderer cannot locate cells.
func (s *Surface) CellCenter(id int) (x, y int, ok bool) {
	loc, isLoc := s.scene.(cellLocator)
	if !isLoc || !s.scene.Valid() || s.width <= 0 || s.height <= 0 {
		return 0, 0, false
	}
	center, ok := loc.CellCenter(id)
	if !ok {
		return 0, 0, false
	}
	fx, fy, ok := render.Project(s.currentFrame().ViewProj, center, s.width, s.height)
	if !ok {
		return 0, 0, false
	}
	x, y = int(fx), int(fy)
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return 0, 0, false
	}
	return x, y, true
}

// Status returns the overlay status for the current game.
func (s *Surface) Status() hud.Status {
	st := hud.Status{
		Size:  s.cfg.size,
		Moves: s.session.Moves(),
		Won:   s.session.Won(),
		Hint:  -1,
	}
	if s.cfg.hints && !st.Won {
		hint, err := s.Hint()
		st.Hint = hint
		st.HintFailed = errors.Is(err, puzzle.ErrUnsolvable)
	}
	return st
}

// Snapshot returns the last rendered frame with the status overlay.
func (s *Surface) Snapshot() (*image.RGBA, error) {
	if s.closed {
		return nil, ErrClosed
	}
	img, err := s.target.ColorImage()
	if err != nil {
		return nil, fmt.Errorf("switchgrid: snapshot: %w", err)
	}
	if s.overlay != nil {
		s.overlay.Draw(img, s.Status())
	}
	return img, nil
}

// Close destroys the render target and stops logger propagation to it.
// Every surface must be closed; an open surface stays reachable from the
// package logger registry. It is safe to call more than once.
func (s *Surface) Close() {
	if s.closed {
		return
	}
	s.closed = true
	liveSurfaces.Delete(s)
	s.target.Destroy()
}
