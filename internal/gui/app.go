package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/san-kum/bezdyn/internal/config"
	"github.com/san-kum/bezdyn/internal/session"
	"github.com/san-kum/bezdyn/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 14, 23, 255)
	ColPanel   = rl.NewColor(18, 24, 38, 230)
	ColAccent  = rl.NewColor(76, 201, 240, 255)
	ColSelect  = rl.NewColor(247, 37, 133, 255)
	ColText    = rl.NewColor(200, 200, 210, 255)
	ColTextDim = rl.NewColor(100, 100, 120, 255)
)

const (
	margin       = 20
	sidebarWidth = 300
	title        = "bezdyn"
)

// keyToggles maps raylib keys to session toggle names.
var keyToggles = []struct {
	key   int32
	label string
	name  string
}{
	{rl.KeyP, "P", "particles"},
	{rl.KeyT, "T", "trail"},
	{rl.KeyG, "G", "glow"},
	{rl.KeyM, "M", "math"},
	{rl.KeyO, "O", "oscillate"},
	{rl.KeyE, "E", "environment"},
}

// SnapshotFunc saves a still of the session and returns its path.
type SnapshotFunc func(s *session.Session) (string, error)

// App is the desktop host: it owns the window, feeds the pointer into the
// session and draws each frame into a persistent render texture.
type App struct {
	Session  *session.Session
	Snapshot SnapshotFunc
	Log      *zap.Logger

	font    rl.Font
	surface *Surface
	target  rl.RenderTexture2D

	running   bool
	showHelp  bool
	status    string
	paramKeys []string
	paramSel  int
}

// initWindow opens a resizable window sized for the session canvas plus
// the sidebar.
func initWindow(w, h float64) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w)+sidebarWidth+2*margin, int32(h)+2*margin, title)
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontFromMemory(".ttf", goregular.TTF, 32, nil)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(s *session.Session, snapshot SnapshotFunc, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	p := s.Params()
	font := loadFont()
	a := &App{
		Session:   s,
		Snapshot:  snapshot,
		Log:       log,
		font:      font,
		surface:   NewSurface(font, p.Width, p.Height),
		target:    rl.LoadRenderTexture(int32(p.Width), int32(p.Height)),
		running:   true,
		paramKeys: sim.ParamNames(),
	}
	s.Attach(a.surface)
	return a
}

// Run opens the window and blocks until it is closed.
func Run(s *session.Session, snapshot SnapshotFunc, log *zap.Logger) {
	p := s.Params()
	initWindow(p.Width, p.Height)
	defer rl.CloseWindow()

	app := NewApp(s, snapshot, log)
	defer rl.UnloadRenderTexture(app.target)
	defer rl.UnloadFont(app.font)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles input. It reports whether the app should quit.
func (a *App) Update() bool {
	if rl.IsWindowResized() {
		a.resize()
	}
	a.handlePointer()

	for _, kt := range keyToggles {
		if rl.IsKeyPressed(kt.key) {
			on, err := a.Session.Flip(kt.name)
			if err != nil {
				a.status = err.Error()
				continue
			}
			a.status = fmt.Sprintf("%s %s", kt.name, onOff(on))
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		return true
	case rl.IsKeyPressed(rl.KeySpace):
		a.running = !a.running
	case rl.IsKeyPressed(rl.KeyR):
		a.Session.Reset()
		a.status = "reset"
	case rl.IsKeyPressed(rl.KeyN):
		a.Session.Randomize()
		a.status = "randomized"
	case rl.IsKeyPressed(rl.KeyX):
		a.Session.ClearParticles()
	case rl.IsKeyPressed(rl.KeyS):
		a.takeSnapshot()
	case rl.IsKeyPressed(rl.KeyTab):
		a.paramSel = (a.paramSel + 1) % len(a.paramKeys)
	case rl.IsKeyPressed(rl.KeyUp):
		a.nudgeParam(1)
	case rl.IsKeyPressed(rl.KeyDown):
		a.nudgeParam(-1)
	case rl.IsKeyPressed(rl.KeySlash), rl.IsKeyPressed(rl.KeyF1):
		a.showHelp = !a.showHelp
	}
	return false
}

// handlePointer maps the mouse into canvas coordinates. Leaving the
// canvas drops any drag.
func (a *App) handlePointer() {
	m := rl.GetMousePosition()
	x, y := float64(m.X)-margin, float64(m.Y)-margin
	w, h := a.surface.Size()
	if x < 0 || y < 0 || x > w || y > h {
		a.Session.PointerLeave()
		return
	}
	a.Session.PointerMove(x, y)
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.Session.PointerDown()
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.Session.PointerUp()
	}
}

func (a *App) resize() {
	w := config.FitWidth(float64(rl.GetScreenWidth()) - sidebarWidth)
	h := config.FitHeight(float64(rl.GetScreenHeight()) - 2*margin)
	if err := a.Session.Resize(w, h); err != nil {
		a.Log.Warn("resize ignored", zap.Error(err))
		return
	}
	a.surface.Resize(w, h)
	rl.UnloadRenderTexture(a.target)
	a.target = rl.LoadRenderTexture(int32(w), int32(h))
}

func (a *App) nudgeParam(dir float64) {
	key := a.paramKeys[a.paramSel]
	v, err := a.Session.Param(key)
	if err != nil {
		return
	}
	step := paramSteps[key]
	if err := a.Session.SetParam(key, v+dir*step); err != nil {
		a.status = err.Error()
	}
}

var paramSteps = map[string]float64{
	"damping":   0.01,
	"gravity":   5,
	"stiffness": 0.01,
	"wind":      5,
}

func (a *App) takeSnapshot() {
	if a.Snapshot == nil {
		return
	}
	path, err := a.Snapshot(a.Session)
	if err != nil {
		a.Log.Warn("snapshot failed", zap.Error(err))
		a.status = "snapshot failed"
		return
	}
	a.status = "saved " + path
}

func (a *App) Draw() {
	rl.BeginTextureMode(a.target)
	if a.running {
		a.Session.Frame(rl.GetTime() * 1000)
	} else {
		a.Session.Snapshot(a.surface)
	}
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	// Render textures are stored bottom-up.
	w, h := a.surface.Size()
	src := rl.NewRectangle(0, 0, float32(w), -float32(h))
	rl.DrawTextureRec(a.target.Texture, src, rl.NewVector2(margin, margin), rl.White)
	rl.DrawRectangleLinesEx(rl.NewRectangle(margin-1, margin-1, float32(w)+2, float32(h)+2), 1, ColTextDim)

	a.DrawHUD(float32(w) + 2*margin)
	rl.EndDrawing()
}

func (a *App) DrawHUD(x float32) {
	rl.DrawRectangleRec(rl.NewRectangle(x, margin, sidebarWidth-margin, float32(rl.GetScreenHeight())-2*margin), ColPanel)
	x += 16
	y := float32(margin + 16)
	line := func(text string, size float32, col rl.Color) {
		a.drawText(text, x, y, size, col)
		y += size + 6
	}

	line(title, 24, ColSelect)
	status, col := "RUNNING", ColAccent
	if !a.running {
		status, col = "PAUSED", ColTextDim
	}
	line(status, 14, col)
	y += 8

	st := a.Session.Stats()
	line(fmt.Sprintf("FPS        %d", st.FPS), 16, ColText)
	line(fmt.Sprintf("Particles  %d", st.Particles), 16, ColText)
	line(fmt.Sprintf("Length     %.0fpx", st.Length), 16, ColText)
	line(fmt.Sprintf("Energy     %.2f", st.Energy), 16, ColText)
	y += 8

	if a.Session.RenderConfig().ShowMathInfo {
		mi := a.Session.MathInfo()
		line(fmt.Sprintf("Closest t  %.3f", mi.ClosestT), 14, ColAccent)
		line(fmt.Sprintf("Distance   %.1fpx", mi.Distance), 14, ColAccent)
		line(fmt.Sprintf("Selected   %s", mi.Selected), 14, ColAccent)
		y += 8
	}

	for i, k := range a.paramKeys {
		v, _ := a.Session.Param(k)
		col := ColTextDim
		prefix := "  "
		if i == a.paramSel {
			col, prefix = ColSelect, "> "
		}
		line(fmt.Sprintf("%s%-10s %7.2f", prefix, k, v), 14, col)
	}
	y += 8

	for _, kt := range keyToggles {
		on, _ := a.Session.Toggle(kt.name)
		col := ColTextDim
		if on {
			col = ColAccent
		}
		line(fmt.Sprintf("[%s] %-12s %s", kt.label, kt.name, onOff(on)), 14, col)
	}

	if a.status != "" {
		y += 8
		line(a.status, 14, ColText)
	}
	if a.showHelp {
		y += 8
		for _, h := range helpLines {
			line(h, 12, ColTextDim)
		}
	} else {
		line("[?] help", 12, ColTextDim)
	}
}

var helpLines = []string{
	"drag P1 / P2 with the mouse",
	"[SPACE] pause  [R] reset",
	"[N] randomize  [X] clear particles",
	"[TAB] param  [UP/DOWN] tune",
	"[S] snapshot  [Q] quit",
}

func (a *App) drawText(text string, x, y, size float32, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(x, y), size, 1, color)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
