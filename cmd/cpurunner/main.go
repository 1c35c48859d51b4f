package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/term"

	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/emu"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/mmu"
)

var (
	// "Failed <n> tests"
	failRe = regexp.MustCompile(`(?i)failed\s+(\d+)\s+tests?`)
	// test markers like "11:01"
	stageRe = regexp.MustCompile(`\b(\d{2}:\d{2})\b`)
)

const progressEvery = 1 << 20

type traceEntry struct {
	pc     uint16
	op     byte
	cyc    int
	regs   cpu.Registers
	ifreg  byte
	ie     byte
	prefix bool
}

func (te traceEntry) String() string {
	return fmt.Sprintf("PC=%04X OP=%02X %-12s cyc=%-2d %s IF=%02X IE=%02X",
		te.pc, te.op, cpu.Mnemonic(te.op, te.prefix), te.cyc, te.regs.String(), te.ifreg, te.ie)
}

type options struct {
	rom          string
	steps        int
	startPC      int
	trace        bool
	until        string
	auto         bool
	timeout      time.Duration
	traceOnFail  bool
	traceWindow  int
	serialWindow int
	lcd          bool
	profile      string
}

func main() {
	var o options
	flag.StringVar(&o.rom, "rom", "", "path to ROM (.gb)")
	flag.IntVar(&o.steps, "steps", 5_000_000, "max CPU steps to run")
	flag.IntVar(&o.startPC, "pc", 0x0100, "initial PC value")
	flag.BoolVar(&o.trace, "trace", false, "print PC/opcodes")
	flag.StringVar(&o.until, "until", "Passed", "stop when serial output contains this substring (case-insensitive); empty to disable")
	flag.BoolVar(&o.auto, "auto", false, "auto-detect 'Passed' or 'Failed N tests' in serial output and exit with code 0/1")
	flag.DurationVar(&o.timeout, "timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	flag.BoolVar(&o.traceOnFail, "traceOnFail", false, "when -auto detects failure, print a recent trace window (slows down)")
	flag.IntVar(&o.traceWindow, "traceWindow", 200, "number of recent instructions to include in 'traceOnFail' dump")
	flag.IntVar(&o.serialWindow, "serialWindow", 8192, "number of recent serial bytes to retain for diagnostics on fail")
	flag.BoolVar(&o.lcd, "lcd", true, "drive the LCD timing (LY, STAT, VBlank) while running")
	flag.StringVar(&o.profile, "profile", "", "write a profile to the current directory: cpu or mem")
	flag.Parse()

	if o.rom == "" {
		log.Fatal("-rom is required")
	}
	os.Exit(run(o))
}

func run(o options) int {
	switch o.profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Printf("unknown -profile %q", o.profile)
		return 2
	}

	s := emu.New(emu.Config{LCD: o.lcd, Logger: log.Default()})
	if err := s.LoadROMFromFile(o.rom); err != nil {
		log.Printf("%v", err)
		return 2
	}
	s.ResetPostBoot()
	s.CPU().SetPC(uint16(o.startPC))

	var ser bytes.Buffer
	serTail := tail{newRing[byte](max(o.serialWindow, 256))}
	w := io.Writer(os.Stdout)
	if o.until != "" || o.auto {
		w = io.MultiWriter(os.Stdout, &ser, serTail)
	}
	s.SetSerialWriter(w)

	// live progress only when a human is watching and the trace is not flooding the terminal
	progress := !o.trace && term.IsTerminal(int(os.Stderr.Fd()))

	start := time.Now()
	var deadline time.Time
	if o.timeout > 0 {
		deadline = start.Add(o.timeout)
	}
	done := func(steps int) {
		if progress {
			fmt.Fprint(os.Stderr, "\r\033[K")
		}
		fmt.Printf("\nDone: steps=%d cycles~=%d elapsed=%s\n", steps, s.Cycles(), time.Since(start).Truncate(time.Millisecond))
	}

	recording := o.trace || o.traceOnFail
	traces := newRing[traceEntry](o.traceWindow)
	lastStage := ""
	c := s.CPU()
	m := s.MMU()

	for i := 0; i < o.steps; i++ {
		var te traceEntry
		if recording {
			te.pc = c.PC
			te.op = m.Read(te.pc)
			if te.op == 0xCB {
				te.op, te.prefix = m.Read(te.pc+1), true
			}
		}
		cyc, err := s.Step()
		if err != nil {
			var ill *cpu.IllegalOpcodeError
			if errors.As(err, &ill) {
				fmt.Printf("\nStopped: illegal opcode %02X at %04X\n", ill.Opcode, ill.Addr)
			} else {
				fmt.Printf("\nStopped: %v\n", err)
			}
			dumpTrace(traces, o.traceOnFail)
			done(i)
			return 3
		}
		if recording {
			te.cyc = cyc
			te.regs = c.Registers
			te.ifreg = m.Read(mmu.AddrIF)
			te.ie = m.Read(mmu.AddrIE)
			if o.trace {
				fmt.Println(te)
			}
			if o.traceOnFail {
				traces.Push(te)
			}
		}
		if progress && i%progressEvery == 0 {
			fmt.Fprintf(os.Stderr, "\rsteps=%d cycles=%d stage=%s", i, s.Cycles(), lastStage)
		}

		if o.auto {
			out := ser.String()
			if mm := stageRe.FindAllString(out, -1); len(mm) > 0 {
				lastStage = mm[len(mm)-1]
			}
			if strings.Contains(strings.ToLower(out), "passed") {
				fmt.Printf("\nDetected PASS in serial output.\n")
				if lastStage != "" {
					fmt.Printf("Last stage seen: %s\n", lastStage)
				}
				done(i + 1)
				return 0
			}
			if mf := failRe.FindStringSubmatch(out); mf != nil {
				fmt.Printf("\nDetected %s in serial output.\n", mf[0])
				if lastStage != "" {
					fmt.Printf("Last stage seen: %s\n", lastStage)
				}
				dumpTrace(traces, o.traceOnFail)
				if serTail.Len() > 0 {
					fmt.Printf("\n--- recent serial (last %d bytes) ---\n%s\n--- end serial ---\n", serTail.Len(), serTail.Items())
				}
				done(i + 1)
				return 1
			}
		} else if o.until != "" {
			if strings.Contains(strings.ToLower(ser.String()), strings.ToLower(o.until)) {
				fmt.Printf("\nDetected '%s' in serial output.\n", o.until)
				done(i + 1)
				return 0
			}
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			done(i + 1)
			return 2
		}
	}
	done(o.steps)
	return 0
}

func dumpTrace(traces *ring[traceEntry], enabled bool) {
	if !enabled || traces.Len() == 0 {
		return
	}
	fmt.Printf("\n--- recent trace (last %d instructions) ---\n", traces.Len())
	for _, te := range traces.Items() {
		fmt.Println(te)
	}
	fmt.Printf("--- end trace ---\n")
}
