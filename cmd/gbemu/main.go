package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/emu"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/ui"
)

type CLIFlags struct {
	ROMPath   string
	Scale     int
	Title     string
	Trace     bool
	SaveRAM   bool // persist battery RAM next to ROM (.sav)
	StatsView string

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.gb)")
	flag.IntVar(&f.Scale, "scale", 3, "window scale, also applied to -outpng")
	flag.StringVar(&f.Title, "title", "gbemu", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "CPU trace log")
	flag.BoolVar(&f.SaveRAM, "save", true, "persist battery RAM to ROM.sav on exit and load on start")
	flag.StringVar(&f.StatsView, "statsview", "", "serve runtime statistics on this address (e.g. localhost:18066)")

	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	return f
}

func savPathFor(rom string) string {
	if rom == "" {
		return ""
	}
	return strings.TrimSuffix(rom, filepath.Ext(rom)) + ".sav"
}

func writeBattery(s *emu.Session, path string) {
	if path == "" {
		return
	}
	data, ok := s.SaveBattery()
	if !ok {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("write %s: %v", path, err)
		return
	}
	log.Printf("wrote %s", path)
}

func main() {
	f := parseFlags()

	if f.StatsView != "" {
		viewer.SetConfiguration(viewer.WithAddr(f.StatsView))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Printf("statsview: http://%s/debug/statsview", f.StatsView)
	}

	cfg := emu.DefaultConfig()
	cfg.Trace = f.Trace
	cfg.Logger = log.Default()
	s := emu.New(cfg)

	if f.ROMPath != "" {
		path := f.ROMPath
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if err := s.LoadROMFromFile(path); err != nil {
			log.Printf("%v", err)
		}
	}
	s.ResetPostBoot()

	var savPath string
	if f.SaveRAM {
		savPath = savPathFor(s.ROMPath())
	}
	if savPath != "" {
		if data, err := os.ReadFile(savPath); err == nil {
			if err := s.LoadBattery(data); err != nil {
				log.Printf("load %s: %v", savPath, err)
			} else {
				log.Printf("loaded save RAM: %s (%d bytes)", savPath, len(data))
			}
		}
	}

	if f.Headless {
		err := runHeadless(s, f.Frames, f.Scale, f.PNGOut, f.Expect)
		writeBattery(s, savPath)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	app := ui.NewApp(ui.Config{Title: f.Title, Scale: f.Scale, BatteryPath: savPath}, s)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
	writeBattery(s, savPath)
}
