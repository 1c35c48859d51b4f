package ui

import (
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/emu"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/mmu"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/ppu"
)

var keymap = []struct {
	key ebiten.Key
	btn mmu.Buttons
}{
	{ebiten.KeyArrowRight, mmu.JoypRight},
	{ebiten.KeyArrowLeft, mmu.JoypLeft},
	{ebiten.KeyArrowUp, mmu.JoypUp},
	{ebiten.KeyArrowDown, mmu.JoypDown},
	{ebiten.KeyZ, mmu.JoypA},
	{ebiten.KeyX, mmu.JoypB},
	{ebiten.KeyShiftRight, mmu.JoypSelect},
	{ebiten.KeyEnter, mmu.JoypStart},
}

var menuItems = []string{"Resume", "Reset", "Save battery", "Quit"}

// App presents a session in an ebiten window and feeds it keyboard input.
type App struct {
	cfg     Config
	s       *emu.Session
	tex     *ebiten.Image
	overlay *ebiten.Image
	paused  bool
	fast    bool
	halted  error // set when the session stops on an error
	status  string
	until   time.Time

	showMenu bool
	menuIdx  int
}

func NewApp(cfg Config, s *emu.Session) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(ppu.Width*cfg.Scale, ppu.Height*cfg.Scale)
	return &App{cfg: cfg, s: s}
}

func (a *App) Run() error {
	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.showMenu = !a.showMenu
		a.menuIdx = 0
	}
	if a.showMenu {
		return a.updateMenu()
	}

	var btn mmu.Buttons
	for _, k := range keymap {
		if ebiten.IsKeyPressed(k.key) {
			btn |= k.btn
		}
	}
	a.s.SetButtons(btn)

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	a.fast = ebiten.IsKeyPressed(ebiten.KeyTab)
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		} else {
			a.toast("Saved " + name)
		}
	}

	if a.halted != nil {
		return nil
	}
	frames := 0
	switch {
	case a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN):
		frames = 1
	case a.paused:
	case a.fast:
		frames = a.cfg.FastForward
	default:
		frames = 1
	}
	for i := 0; i < frames; i++ {
		if err := a.s.StepFrame(); err != nil {
			log.Printf("ui: emulation stopped: %v", err)
			a.halted = err
			break
		}
	}
	return nil
}

func (a *App) updateMenu() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < len(menuItems)-1 {
		a.menuIdx++
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return nil
	}
	switch a.menuIdx {
	case 0:
	case 1:
		a.s.ResetPostBoot()
		a.halted = nil
		a.toast("Reset")
	case 2:
		a.toast(a.saveBattery())
	case 3:
		return ebiten.Termination
	}
	a.showMenu = false
	return nil
}

func (a *App) saveBattery() string {
	if a.cfg.BatteryPath == "" {
		return "No save file configured"
	}
	data, ok := a.s.SaveBattery()
	if !ok {
		return "Cartridge has no battery"
	}
	if err := os.WriteFile(a.cfg.BatteryPath, data, 0o644); err != nil {
		return "Save failed: " + err.Error()
	}
	return "Saved " + filepath.Base(a.cfg.BatteryPath)
}

func (a *App) toast(msg string) {
	a.status = msg
	a.until = time.Now().Add(2 * time.Second)
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(ppu.Width, ppu.Height)
		a.overlay = ebiten.NewImage(ppu.Width, ppu.Height)
		a.overlay.Fill(color.RGBA{0, 0, 0, 160})
	}
	a.tex.WritePixels(a.s.Framebuffer())
	screen.DrawImage(a.tex, nil)

	if a.showMenu {
		screen.DrawImage(a.overlay, nil)
		ebitenutil.DebugPrintAt(screen, "Menu:", 10, 10)
		for i, s := range menuItems {
			prefix := "  "
			if i == a.menuIdx {
				prefix = "> "
			}
			ebitenutil.DebugPrintAt(screen, prefix+s, 10, 24+i*14)
		}
	}
	switch {
	case a.halted != nil:
		ebitenutil.DebugPrintAt(screen, "Stopped", 4, ppu.Height-30)
	case a.paused:
		ebitenutil.DebugPrintAt(screen, "Paused", 4, ppu.Height-30)
	}
	if a.status != "" && time.Now().Before(a.until) {
		ebitenutil.DebugPrintAt(screen, a.status, 4, ppu.Height-16)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return ppu.Width, ppu.Height }

func (a *App) saveScreenshot() (string, error) {
	name := filepath.Join(a.cfg.ShotDir, fmt.Sprintf("screenshot_%s.png", time.Now().Format("20060102_150405")))
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := png.Encode(f, a.s.LCD().Image()); err != nil {
		return "", err
	}
	return name, nil
}
