// Command wormses is an interactive top-down demo of the worm simulation.
// It drives a small swarm at a fixed tick rate and draws each ring from the
// instance buffers the worms write, consuming the same transform and color
// data a GPU renderer would upload.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hans-linger/wormses/common"
	"github.com/hans-linger/wormses/engine/ring"
	"github.com/hans-linger/wormses/engine/swarm"
	"github.com/hans-linger/wormses/engine/worm"
)

const (
	screenWidth  = 960
	screenHeight = 720
)

type config struct {
	seed       int64
	wormCount  int
	tps        int
	pixelScale float64
}

// game adapts the worm swarm to the ebiten.Game interface.
type game struct {
	cfg   config
	swarm swarm.Swarm
	worms []worm.Worm

	wallClock float64
	paused    bool
}

func newGame(cfg config) *game {
	g := &game{cfg: cfg}
	g.reset(cfg.seed)
	return g
}

// reset rebuilds the swarm from scratch with the provided seed.
func (g *game) reset(seed int64) {
	if g.swarm != nil {
		g.swarm.Dispose()
	}
	g.cfg.seed = seed
	g.wallClock = 0

	g.swarm = swarm.NewSwarm()
	g.worms = g.worms[:0]
	for i := 0; i < g.cfg.wormCount; i++ {
		w := worm.NewWorm(
			worm.WithTotalLength(10),
			worm.WithSegmentSpacing(0.4),
			worm.WithHeadSpeed(1.6),
			worm.WithRand(rand.New(rand.NewSource(seed+int64(i)))),
			worm.WithDirectionChangeInterval(2*time.Second),
			worm.WithRadiusKeys([]ring.RadiusKey{
				{Height: 0, Radius: 0.9},
				{Height: 3, Radius: 1.0},
				{Height: 10, Radius: 0.35},
			}),
			worm.WithBlendCurve(ring.BlendCosine),
		)
		// Spread the worms out so they do not start stacked at the origin.
		w.SetPosition([3]float32{float32(i%4)*6 - 9, 0, float32(i/4)*6 - 6})
		g.worms = append(g.worms, w)
		g.swarm.Add(w)
	}
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset(g.cfg.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.reset(time.Now().UnixNano())
	}

	if g.paused {
		return nil
	}

	dt := 1.0 / float64(g.cfg.tps)
	g.wallClock += dt
	g.swarm.Tick(float32(dt), g.wallClock)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 12, B: 20, A: 255})

	for _, w := range g.worms {
		g.drawWorm(screen, w)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"worms: %d  seed: %d  t: %.1fs\nspace pause | r reset | s reseed | q quit",
		len(g.worms), g.cfg.seed, g.wallClock))
}

// drawWorm reads one worm's instance buffer and projects each ring onto the
// XZ plane. Clearing the dirty flags afterward follows the same upload
// handshake a GPU-backed consumer uses.
func (g *game) drawWorm(screen *ebiten.Image, w worm.Worm) {
	buf := w.Buffer()
	transforms := buf.TransformData()
	colors := buf.ColorData()

	for i := w.RingCount() - 1; i >= 0; i-- {
		m := transforms[i*16 : i*16+16]
		// Translation lives in the last column; the length of the first
		// column recovers the uniform scale.
		x := float64(m[12])
		z := float64(m[14])
		scale := float64(common.Length3([3]float32{m[0], m[1], m[2]}))

		sx := screenWidth/2 + x*g.cfg.pixelScale
		sy := screenHeight/2 + z*g.cfg.pixelScale
		radius := scale * g.cfg.pixelScale * 0.45
		if radius < 1 {
			radius = 1
		}

		col := color.RGBA{
			R: uint8(common.Clamp(colors[i*3], 0, 1) * 255),
			G: uint8(common.Clamp(colors[i*3+1], 0, 1) * 255),
			B: uint8(common.Clamp(colors[i*3+2], 0, 1) * 255),
			A: 255,
		}
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(radius), col, true)
	}

	buf.ClearTransformsDirty()
	buf.ClearColorsDirty()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	cfg := config{}
	flag.Int64Var(&cfg.seed, "seed", 1, "steering seed (same seed, same motion)")
	flag.IntVar(&cfg.wormCount, "worms", 6, "number of worms")
	flag.IntVar(&cfg.tps, "tps", 60, "simulation ticks per second")
	flag.Float64Var(&cfg.pixelScale, "scale", 24, "pixels per world unit")
	flag.Parse()

	if cfg.wormCount < 1 {
		cfg.wormCount = 1
	}
	if cfg.tps < 1 {
		cfg.tps = 60
	}

	ebiten.SetWindowTitle("wormses")
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetTPS(cfg.tps)

	if err := ebiten.RunGame(newGame(cfg)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
