// Command preview opens a debug window over an avatar: it draws the root,
// pivot and sub-model anchors and lets the placement be tuned by keyboard
// and mouse. Model files are watched and reloaded on change.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/akmonengine/puppet"
	"github.com/akmonengine/puppet/config"
	"github.com/akmonengine/puppet/live2d/headless"
	"github.com/akmonengine/puppet/meta"
	"github.com/akmonengine/puppet/prefs"
	"github.com/akmonengine/puppet/scene"
	"github.com/akmonengine/puppet/script"
	"github.com/akmonengine/puppet/watch"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
)

// world units per canvas pixel, matching the adjuster calibration
const pixelsPerUnit = 100

const (
	moveStep   = 0.1
	rotateStep = 5.0
	scaleStep  = 1.05
)

var (
	backgroundColor = color.RGBA{R: 24, G: 26, B: 32, A: 255}
	axisColor       = color.RGBA{R: 60, G: 64, B: 72, A: 255}
	poseColor       = color.RGBA{R: 120, G: 200, B: 255, A: 255}
	mainPoseColor   = color.RGBA{R: 255, G: 200, B: 80, A: 255}
	pivotColor      = color.RGBA{R: 255, G: 90, B: 90, A: 255}
	rootColor       = color.RGBA{R: 140, G: 255, B: 140, A: 255}
)

type Game struct {
	avatar    *puppet.ModelAdjuster
	watcher   *watch.Watcher
	width     float64
	height    float64
	clipboard bool
	status    string
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.drainWatcher()

	a := g.avatar
	if main := a.MainPos(); main != nil {
		p := main.Position()
		dx, dy := 0.0, 0.0
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			dx -= moveStep
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			dx += moveStep
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
			dy += moveStep
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
			dy -= moveStep
		}
		if dx != 0 || dy != 0 {
			a.SetCharacterWorldPosition(p.X()+dx, p.Y()+dy)
		}

		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			w := g.screenToWorld(ebiten.CursorPosition())
			a.SetCharacterWorldPosition(w.X(), w.Y())
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		a.SetRotation(a.RootRotation() - rotateStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		a.SetRotation(a.RootRotation() + rotateStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		a.SetScale(a.RootScaleValue() / scaleStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		a.SetScale(a.RootScaleValue() * scaleStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		a.SetReverseXScale(!a.ReverseXScale())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		a.SetUsePivotOffset(!a.Options().UsePivotOffset)
		g.status = fmt.Sprintf("pivot offset: %v", a.Options().UsePivotOffset)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		a.ReloadModels()
		g.status = "models reloaded"
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyTransform()
	}

	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}

	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if change.Kind == watch.KindTexture {
				if err := g.avatar.ReloadTextures(); err != nil {
					log.Printf("[Preview] Warning: Failed to reload textures: %v", err)
				}
				g.status = "textures reloaded: " + filepath.Base(change.Path)
			} else {
				g.avatar.ReloadModels()
				g.status = "models reloaded: " + filepath.Base(change.Path)
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("[Preview] Warning: watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) copyTransform() {
	text := puppet.TransformText(g.avatar)
	if !g.clipboard {
		log.Println(text)
		g.status = "clipboard unavailable, transform logged"
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	g.status = "transform copied"
}

func (g *Game) worldToScreen(p mgl64.Vec3) (float32, float32) {
	return float32(p.X()*pixelsPerUnit + g.width/2), float32(g.height/2 - p.Y()*pixelsPerUnit)
}

func (g *Game) screenToWorld(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{
		(float64(x) - g.width/2) / pixelsPerUnit,
		(g.height/2 - float64(y)) / pixelsPerUnit,
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w, h := float32(g.width), float32(g.height)
	vector.StrokeLine(screen, w/2, 0, w/2, h, 1, axisColor, false)
	vector.StrokeLine(screen, 0, h/2, w, h/2, 1, axisColor, false)

	for i, pose := range g.avatar.Poses() {
		clr := poseColor
		if i == 0 {
			clr = mainPoseColor
		}
		x, y := g.worldToScreen(pose.Node().Position())
		vector.StrokeRect(screen, x-12, y-12, 24, 24, 2, clr, true)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", pose.Index()), int(x)+14, int(y)-8)
	}

	px, py := g.worldToScreen(g.avatar.Pivot().Position())
	vector.StrokeLine(screen, px-16, py, px+16, py, 2, pivotColor, true)
	vector.StrokeLine(screen, px, py-16, px, py+16, 2, pivotColor, true)

	rx, ry := g.worldToScreen(g.avatar.Root().Position())
	vector.StrokeRect(screen, rx-6, ry-6, 12, 12, 2, rootColor, true)

	info := fmt.Sprintf("%s\n%s\nscale %.3f  rotation %.1f  mirrored %v",
		g.avatar.Name(), puppet.TransformText(g.avatar),
		g.avatar.RootScaleValue(), g.avatar.RootRotation(), g.avatar.ReverseXScale())
	ebitenutil.DebugPrintAt(screen, info, 10, 10)
	ebitenutil.DebugPrintAt(screen, "arrows/drag: move  Q/E: rotate  Z/X: scale  M: mirror  P: pivot  R: reload  C: copy", 10, int(h)-40)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 10, int(h)-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.width), int(g.height)
}

func main() {
	metaPath := flag.String("meta", "", "Avatar meta file")
	configPath := flag.String("config", "", "Optional adjuster options file")
	scriptPath := flag.String("script", "", "Optional placement script run after loading")
	flag.Parse()

	store, err := prefs.Open("puppet")
	if err != nil {
		log.Printf("[Preview] Warning: %v (prefs kept in memory)", err)
		store = prefs.New(nil)
	}
	if *metaPath == "" {
		log.Fatalf("no -meta given (last used directory: %s)", store.LastMetaDir())
	}

	*metaPath = store.ResolveMeta(*metaPath)
	m, err := meta.Load(*metaPath)
	if err != nil {
		log.Fatalf("Failed to load meta: %v", err)
	}

	opts := config.Default()
	if *configPath != "" {
		if opts, err = config.Load(*configPath); err != nil {
			log.Printf("[Preview] Warning: %v (using defaults)", err)
		}
	} else {
		opts.UsePivotOffset = store.Prefs().UsePivotOffset
	}

	avatar := puppet.NewModelAdjuster(scene.New(m.Name), m, &headless.Loader{}, opts)
	avatar.CreateModel()
	avatar.Adjust()

	if *scriptPath != "" {
		src, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("Failed to read script: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = script.Run(ctx, src, avatar)
		cancel()
		if err != nil {
			log.Printf("[Preview] Warning: script failed: %v", err)
		}
	}

	game := &Game{
		avatar:    avatar,
		width:     opts.CanvasWidth,
		height:    opts.CanvasHeight,
		clipboard: clipboard.Init() == nil,
	}

	if w, err := watch.NewWatcher(m.ModelDirs()...); err != nil {
		log.Printf("[Preview] Warning: Failed to watch model files: %v", err)
	} else {
		game.watcher = w
		defer w.Close()
	}

	ebiten.SetWindowSize(int(opts.CanvasWidth/2), int(opts.CanvasHeight/2))
	ebiten.SetWindowTitle("puppet preview - " + m.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}

	if abs, err := filepath.Abs(*metaPath); err == nil {
		store.RememberMeta(filepath.Dir(abs), abs)
	}
	store.SetUsePivotOffset(avatar.Options().UsePivotOffset)
	if err := store.Save(); err != nil {
		log.Printf("[Preview] Warning: %v", err)
	}
}
