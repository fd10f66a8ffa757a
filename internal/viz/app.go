package viz

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/stellarsim/internal/classify"
	"github.com/san-kum/stellarsim/internal/player"
)

const massFactor = 1.25

type TickMsg time.Time

type AppOptions struct {
	FPS       int
	Theme     string
	ExportDir string
	Logger    *zap.Logger
}

// App is the interactive track player.
type App struct {
	player *player.Player
	keys   KeyMap
	help   help.Model
	theme  Theme

	interval  time.Duration
	exportDir string
	status    string
	log       *zap.Logger

	width, height int
}

func NewApp(p *player.Player, opts AppOptions) App {
	fps := opts.FPS
	if fps <= 0 {
		fps = 10
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return App{
		player:    p,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(opts.Theme),
		interval:  time.Second / time.Duration(fps),
		exportDir: opts.ExportDir,
		log:       log,
		width:     100,
		height:    30,
	}
}

func (a App) tick() tea.Cmd {
	return tea.Tick(a.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (a App) Init() tea.Cmd { return a.tick() }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
	case TickMsg:
		a.player.Tick()
		return a, a.tick()
	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	p := a.player
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Play):
		p.Toggle()
	case key.Matches(msg, a.keys.Forward):
		p.Step(1)
	case key.Matches(msg, a.keys.Back):
		p.Step(-1)
	case key.Matches(msg, a.keys.MassUp):
		a.setMass(p.Mass() * massFactor)
	case key.Matches(msg, a.keys.MassDown):
		a.setMass(p.Mass() / massFactor)
	case key.Matches(msg, a.keys.Seek):
		d := float64(msg.String()[0] - '0')
		p.SetTimePosition(d / 9)
	case key.Matches(msg, a.keys.Reset):
		p.Reset()
	case key.Matches(msg, a.keys.Export):
		a.export()
	case key.Matches(msg, a.keys.Theme):
		a.theme = NextTheme(a.theme)
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

func (a *App) setMass(m float64) {
	a.player.SetInitialMass(m)
	a.status = fmt.Sprintf("evolution calculated: %d models", a.player.Len())
	a.log.Debug("mass changed", zap.Float64("mass_msun", a.player.Mass()))
}

// ExportName is the default file name for an exported track.
func ExportName(massSolar float64) string {
	return fmt.Sprintf("evolution_%.1fMsun.json", massSolar)
}

func (a *App) export() {
	path := filepath.Join(a.exportDir, ExportName(a.player.Mass()))
	if err := a.player.Export(path); err != nil {
		a.status = "export failed: " + err.Error()
		a.log.Warn("export failed", zap.String("path", path), zap.Error(err))
		return
	}
	a.status = "exported to " + path
	a.log.Info("track exported", zap.String("path", path))
}

func (a App) Status() string { return a.status }

func (a App) Theme() Theme { return a.theme }

func (a App) View() string {
	th := a.theme
	muted := lipgloss.NewStyle().Foreground(th.Muted)
	accent := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(GradientText("STELLARSIM", th.Title[0], th.Title[1]))
	b.WriteString(muted.Render("  stellar evolution player") + "\n\n")

	m, ok := a.player.Current()
	if !ok {
		b.WriteString(muted.Render("empty track") + "\n")
		b.WriteString(a.help.View(a.keys))
		return b.String()
	}

	plotW := max(20, a.width-44)
	plotH := max(6, a.height-12)
	hr := NewHRDiagram(a.player.Track(), plotW, plotH)
	plot := hr.Framed(a.player.Index(), lipgloss.NewStyle().Foreground(th.Track), StarStyle(m.Teff), muted)

	s := m.Solar()
	rows := [][2]string{
		{"mass", fmt.Sprintf("%.3f M☉", s.M)},
		{"age", fmt.Sprintf("%.4g Gyr", s.AgeGyr)},
		{"luminosity", fmt.Sprintf("%.4g L☉", s.L)},
		{"radius", fmt.Sprintf("%.4g R☉", s.R)},
		{"T_eff", fmt.Sprintf("%.0f K", s.Teff)},
		{"class", StarStyle(m.Teff).Render(s.SpectralClass)},
		{"reference", referenceSwatch(s.SpectralClass)},
		{"phase", PhaseStyle(m.Phase).Render(s.Phase)},
	}
	var info strings.Builder
	info.WriteString(accent.Render(fmt.Sprintf("%.2f M☉ initial", a.player.Mass())) + "\n")
	info.WriteString(muted.Render(a.player.Track().Composition().String()) + "\n\n")
	for _, r := range rows {
		info.WriteString(MetricLabel.Render(fmt.Sprintf("%-11s", r[0])) + MetricValue.Render(r[1]) + "\n")
	}
	info.WriteString("\n" + StarStyle(m.Teff).Render("●●●"))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, Panel.Render(plot), " ", Panel.Render(info.String())))
	b.WriteString("\n")

	state := StatusPaused.Render("❚❚ paused")
	if a.player.Playing() {
		state = StatusPlaying.Render("▶ playing")
	}
	b.WriteString(fmt.Sprintf("%s %s %s\n", state,
		ProgressBar(a.player.Fraction(), max(10, a.width-40), accent),
		muted.Render(fmt.Sprintf("%d/%d", a.player.Index()+1, a.player.Len()))))
	if a.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(th.Warning).Render(a.status) + "\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// Run starts the player in the alternate screen and blocks until it quits.
func Run(p *player.Player, opts AppOptions) error {
	_, err := tea.NewProgram(NewApp(p, opts), tea.WithAltScreen()).Run()
	return err
}

// referenceSwatch renders the catalogue colour of a spectral class in that
// colour.
func referenceSwatch(class string) string {
	ref := classify.ReferenceColor(class)
	if ref == "" {
		return "-"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ref)).Render(ref)
}
