package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/bezdyn/internal/render"
	"github.com/san-kum/bezdyn/internal/session"
	"github.com/san-kum/bezdyn/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	tickRate        = time.Second / 60

	// canvasStyle padding, in cells.
	padTop  = 1
	padLeft = 2

	GIFName = "bezier.gif"
)

var canvasStyle = lipgloss.NewStyle().Padding(padTop, padLeft)

// paramSpec is the tuning step and display range of a parameter.
type paramSpec struct {
	step, lo, hi float64
}

var paramSpecs = map[string]paramSpec{
	"damping":   {0.01, 0, 1},
	"gravity":   {5, -100, 100},
	"stiffness": {0.01, 0, 0.5},
	"wind":      {5, -100, 100},
}

var toggleKeys = map[string]string{
	"p": "particles",
	"t": "trail",
	"g": "glow",
	"m": "math",
	"o": "oscillate",
	"e": "environment",
}

type TickMsg time.Time

// SnapshotFunc writes a still of the session and returns where it went.
type SnapshotFunc func(s *session.Session) (string, error)

// Model drives a session from the terminal: the mouse is the pointer and
// the keyboard owns the toggles.
type Model struct {
	session *session.Session
	canvas  *Canvas
	surface *BrailleSurface
	theme   Theme
	styles  styles
	log     *zap.Logger

	running   bool
	showHelp  bool
	paramKeys []string
	selected  int

	energyHistory   []float64
	particleHistory []float64

	// spring-smoothed readouts
	spring                 harmonica.Spring
	fpsShown, fpsVel       float64
	energyShown, energyVel float64

	snapshot  SnapshotFunc
	status    string
	recording bool
	frames    []*image.Paletted
}

type Option func(*Model)

func WithTheme(name string) Option {
	return func(m *Model) {
		m.theme = GetTheme(name)
		m.styles = newStyles(m.theme)
	}
}

func WithSnapshot(f SnapshotFunc) Option {
	return func(m *Model) { m.snapshot = f }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) { m.log = l }
}

// NewModel attaches a Braille surface to s and wraps it in a Model.
func NewModel(s *session.Session, opts ...Option) Model {
	p := s.Params()
	canvas := NewCanvas(width, height)
	m := Model{
		session:         s,
		canvas:          canvas,
		surface:         NewBrailleSurface(canvas, p.Width, p.Height),
		theme:           ThemeNeon,
		styles:          newStyles(ThemeNeon),
		log:             zap.NewNop(),
		running:         true,
		paramKeys:       sim.ParamNames(),
		energyHistory:   make([]float64, 0, historyCapacity),
		particleHistory: make([]float64, 0, historyCapacity),
		spring:          harmonica.NewSpring(harmonica.FPS(60), 6.0, 1.0),
		fpsShown:        render.MaxFPS,
	}
	for _, o := range opts {
		o(&m)
	}
	s.Attach(m.surface)
	return m
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case TickMsg:
		m.step(time.Time(msg))
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if name, ok := toggleKeys[key]; ok {
		on, err := m.session.Flip(name)
		if err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("%s %s", name, onOff(on))
		}
		return m, nil
	}
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.session.Reset()
		m.energyHistory = m.energyHistory[:0]
		m.particleHistory = m.particleHistory[:0]
		m.status = "reset"
	case "n":
		m.session.Randomize()
		m.status = "randomized"
	case "x":
		m.session.ClearParticles()
	case "tab":
		m.selected = (m.selected + 1) % len(m.paramKeys)
	case "up", "k":
		m.adjustParam(1)
	case "down", "j":
		m.adjustParam(-1)
	case "c":
		m.theme = NextTheme(m.theme)
		m.styles = newStyles(m.theme)
	case "s":
		m.takeSnapshot()
	case "G":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// handleMouse maps terminal cells to canvas pixels. Events outside the
// canvas count as the pointer leaving it.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.showHelp {
		return
	}
	col, row := msg.X-padLeft, msg.Y-padTop
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		m.session.PointerLeave()
		return
	}
	p := m.surface.FromCell(col, row)
	m.session.PointerMove(p.X, p.Y)

	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.session.PointerDown()
	case tea.MouseActionRelease:
		m.session.PointerUp()
	}
}

func (m *Model) adjustParam(dir float64) {
	key := m.paramKeys[m.selected]
	v, err := m.session.Param(key)
	if err != nil {
		return
	}
	ps := paramSpecs[key]
	v = max(ps.lo, min(ps.hi, v+dir*ps.step))
	if err := m.session.SetParam(key, v); err != nil {
		m.status = err.Error()
	}
}

// step ticks the session, or redraws it still while paused.
func (m *Model) step(now time.Time) {
	if !m.running {
		m.session.Snapshot(m.surface)
		return
	}
	stats := m.session.Frame(float64(now.UnixNano()) / 1e6)

	m.energyHistory = appendCapped(m.energyHistory, stats.Energy)
	m.particleHistory = appendCapped(m.particleHistory, float64(stats.Particles))
	m.fpsShown, m.fpsVel = m.spring.Update(m.fpsShown, m.fpsVel, float64(stats.FPS))
	m.energyShown, m.energyVel = m.spring.Update(m.energyShown, m.energyVel, stats.Energy)
}

func appendCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) takeSnapshot() {
	if m.snapshot == nil {
		m.status = "snapshots unavailable"
		return
	}
	path, err := m.snapshot(m.session)
	if err != nil {
		m.log.Warn("snapshot failed", zap.Error(err))
		m.status = "snapshot failed"
		return
	}
	m.status = "saved " + path
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0)
		m.status = "recording"
		return
	}
	if err := m.saveGIF(GIFName); err != nil {
		m.log.Warn("gif save failed", zap.Error(err))
		m.status = "gif failed"
	} else {
		m.status = fmt.Sprintf("saved %s (%d frames)", GIFName, len(m.frames))
	}
	m.recording = false
	m.frames = nil
}

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme.Ink))
	sidebar := m.styles.panel.Render(m.sidebar())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, sidebar)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) sidebar() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.title.Render("BÉZIER DYNAMICS") + "\n")

	switch {
	case m.recording:
		s.WriteString(st.recording.Render("● REC"))
	case m.running:
		s.WriteString(st.running.Render("RUNNING"))
	default:
		s.WriteString(st.paused.Render("PAUSED"))
	}
	s.WriteString("\n\n")

	stats := m.session.Stats()
	row := func(label, value string) {
		s.WriteString(st.label.Width(12).Render(label) + st.value.Render(value) + "\n")
	}
	row("FPS", fmt.Sprintf("%.0f", m.fpsShown))
	row("Particles", fmt.Sprintf("%d", stats.Particles))
	row("Length", fmt.Sprintf("%.0fpx", stats.Length))
	row("Energy", fmt.Sprintf("%.2f", m.energyShown))
	row("Time", fmt.Sprintf("%.2fs", m.session.Time()))

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString("\n" + st.on.Render(chart) + "\n")
	}
	s.WriteString(st.label.Render(SparklineChart(m.particleHistory, 30)) + "\n")

	if cfg := m.session.RenderConfig(); cfg.ShowMathInfo {
		mi := m.session.MathInfo()
		s.WriteString("\n" + st.title.Render("MATH") + "\n")
		row("Closest t", fmt.Sprintf("%.3f", mi.ClosestT))
		row("Distance", fmt.Sprintf("%.1fpx", mi.Distance))
		row("Selected", mi.Selected)
	}

	s.WriteString("\n" + st.title.Render("PARAMETERS") + "\n")
	for i, k := range m.paramKeys {
		v, _ := m.session.Param(k)
		ps := paramSpecs[k]
		bar := ProgressBar((v-ps.lo)/(ps.hi-ps.lo), 10)
		line := fmt.Sprintf("%-10s %s %6.2f", k, bar, v)
		if i == m.selected {
			s.WriteString(st.selected.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.label.Render(line) + "\n")
		}
	}

	s.WriteString("\n" + st.title.Render("TOGGLES") + "\n")
	for _, key := range []string{"p", "t", "g", "m", "o", "e"} {
		name := toggleKeys[key]
		on, _ := m.session.Toggle(name)
		style := st.off
		if on {
			style = st.on
		}
		s.WriteString(fmt.Sprintf("%s %s\n", st.label.Render(key), style.Render(fmt.Sprintf("%-12s %s", name, onOff(on)))))
	}

	s.WriteString("\n" + st.label.Render(Separator(30)) + "\n")
	if m.status != "" {
		s.WriteString(st.muted.Render(m.status) + "\n")
	}
	s.WriteString(st.muted.Render("SP:Pause R:Reset N:Random Q:Quit\n?:Help"))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Mouse    - Drag P1 / P2             ║
║  Space    - Pause/Resume             ║
║  R        - Reset curve              ║
║  N        - Randomize curve          ║
║  X        - Clear particles          ║
║  P T G    - Particles, trail, glow   ║
║  M O E    - Math, oscillate, forces  ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  S        - Save PNG snapshot        ║
║  Shift+G  - Toggle GIF recording     ║
║  C        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// captureFrame rasterises the canvas dots into a paletted image, one
// charW×charH block per cell.
func (m *Model) captureFrame() {
	m.frames = append(m.frames, rasterize(m.canvas))
}

var gifPalette = func() color.Palette {
	p := color.Palette{color.Black, color.White}
	for _, c := range render.TangentPalette {
		p = append(p, c)
	}
	return p
}()

func rasterize(c *Canvas) *image.Paletted {
	const charW, charH = 8, 16
	dotW, dotH := charW/2, charH/4
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), gifPalette)
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			idx := uint8(1)
			if fg := c.colors[row][col]; fg != "" {
				idx = uint8(gifPalette.Index(render.Hex(string(fg))))
				if idx == 0 {
					idx = 1
				}
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if c.dots[row*4+dy][col*2+dx] == 0 {
						continue
					}
					baseX, baseY := col*charW+dx*dotW, row*charH+dy*dotH
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+px, baseY+py, idx)
						}
					}
				}
			}
		}
	}
	return img
}

func (m *Model) saveGIF(path string) error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

// Run starts the terminal program. Motion is reported with or without a
// button held so idle points can follow a hovering pointer.
func Run(s *session.Session, opts ...Option) error {
	p := tea.NewProgram(NewModel(s, opts...), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
