package emu

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/cart"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/mmu"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/ppu"
	"github.com/FabianRolfMatthiasNoll/dmgcore/internal/timer"
)

// CyclesPerFrame is one LCD frame: 154 lines of 456 T-cycles.
const CyclesPerFrame = 70224

// Session owns the complete machine state. Every component is mutated only from
// Step, in the order CPU, timer, LCD, input, serial.
type Session struct {
	cfg Config
	log *log.Logger

	mmu   *mmu.MMU
	cpu   *cpu.CPU
	timer *timer.Timer
	lcd   *ppu.LCD

	serial  io.Writer
	romPath string
	cycles  uint64
}

// New creates a session in the power-on state with an empty address space.
func New(cfg Config) *Session {
	s := &Session{cfg: cfg, log: cfg.Logger}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	s.attach(mmu.New())
	return s
}

func (s *Session) attach(m *mmu.MMU) {
	s.mmu = m
	s.cpu = cpu.New(m)
	s.timer = timer.New()
	s.lcd = ppu.New()
	s.cycles = 0
}

// LoadCartridge replaces the address space with a fresh one holding rom. The CPU
// returns to the power-on state. Malformed images never fail.
func (s *Session) LoadCartridge(rom []byte) {
	c := cart.Load(rom, s.log)
	m := mmu.New()
	m.LoadCartridge(c)
	s.attach(m)
	if c.Header.Title != "" {
		s.log.Printf("emu: loaded %q (%s, %d ROM banks, %d RAM banks)",
			c.Header.Title, c.Header.TypeName, c.ROMBanks(), c.RAMBanks())
	}
}

// LoadROMFromFile loads a ROM image from disk. When the file cannot be read the
// session continues with an all-zero cartridge; the error is returned for the
// caller to report.
func (s *Session) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Printf("emu: %v; running with an empty cartridge", err)
		s.LoadCartridge(nil)
		s.romPath = ""
		return fmt.Errorf("load rom: %w", err)
	}
	s.LoadCartridge(data)
	s.romPath = path
	return nil
}

// ROMPath returns the file the current cartridge came from, if any.
func (s *Session) ROMPath() string { return s.romPath }

// ResetPostBoot sets CPU and I/O registers to the state the DMG boot ROM leaves
// behind, keeping the loaded cartridge. Execution starts at 0x0100.
func (s *Session) ResetPostBoot() {
	s.cpu.ResetNoBoot()
	m := s.mmu
	m.WriteDirect(mmu.AddrJOYP, 0xCF)
	m.WriteDirect(mmu.AddrSC, 0x7E)
	m.WriteDirect(mmu.AddrTIMA, 0x00)
	m.WriteDirect(mmu.AddrTMA, 0x00)
	m.WriteDirect(mmu.AddrTAC, 0xF8)
	m.WriteDirect(mmu.AddrIF, 0xE1)
	m.WriteDirect(mmu.AddrLCDC, 0x91) // LCD on, BG on, tile data 8000, BG map 9800
	m.WriteDirect(mmu.AddrSTAT, 0x85)
	m.WriteDirect(mmu.AddrSCY, 0x00)
	m.WriteDirect(mmu.AddrSCX, 0x00)
	m.WriteDirect(mmu.AddrLYC, 0x00)
	m.WriteDirect(mmu.AddrBGP, 0xFC)
	m.WriteDirect(mmu.AddrOBP0, 0xFF)
	m.WriteDirect(mmu.AddrOBP1, 0xFF)
	m.WriteDirect(mmu.AddrWY, 0x00)
	m.WriteDirect(mmu.AddrWX, 0x00)
	m.WriteDirect(mmu.AddrIE, 0x00)
}

// Step executes one CPU step and feeds its cycles to the other components.
// An illegal opcode ends the session: the error is returned and no time passes.
func (s *Session) Step() (int, error) {
	if s.cfg.Trace && !s.cpu.Halted {
		s.trace()
	}
	cycles, err := s.cpu.Step()
	if err != nil {
		return 0, err
	}
	s.timer.Tick(s.mmu, cycles)
	if s.cfg.LCD {
		s.lcd.Tick(s.mmu, cycles)
	}
	s.mmu.RefreshJoypad()
	s.pollSerial()
	s.cycles += uint64(cycles)
	return cycles, nil
}

// StepFrame runs one frame worth of cycles.
func (s *Session) StepFrame() error {
	for acc := 0; acc < CyclesPerFrame; {
		n, err := s.Step()
		if err != nil {
			return err
		}
		acc += n
	}
	return nil
}

func (s *Session) trace() {
	pc := s.cpu.PC
	op := s.mmu.Read(pc)
	name := cpu.Mnemonic(op, false)
	if op == 0xCB {
		name = cpu.Mnemonic(s.mmu.Read(pc+1), true)
	}
	s.log.Printf("%04X %02X %-14s %s", pc, op, name, s.cpu.Registers.String())
}

// SetSerialWriter receives every byte the program sends over the serial port.
func (s *Session) SetSerialWriter(w io.Writer) { s.serial = w }

// pollSerial completes a requested transfer immediately: the SB byte goes to the
// writer, SC bit 7 clears and the serial interrupt is requested. No link partner
// is emulated.
func (s *Session) pollSerial() {
	sc := s.mmu.Read(mmu.AddrSC)
	if sc&0x80 == 0 {
		return
	}
	if s.serial != nil {
		if _, err := s.serial.Write([]byte{s.mmu.Read(mmu.AddrSB)}); err != nil {
			s.log.Printf("emu: serial: %v", err)
		}
	}
	s.mmu.WriteDirect(mmu.AddrSC, sc&^0x80)
	s.mmu.RequestInterrupt(mmu.IntSerial)
}

// SetButtons publishes the pressed keys through P1.
func (s *Session) SetButtons(b mmu.Buttons) { s.mmu.SetJoypad(b) }

// SaveBattery returns external RAM for battery-backed cartridges.
func (s *Session) SaveBattery() ([]byte, bool) {
	c := s.mmu.Cartridge()
	if c == nil || !c.HasBattery() {
		return nil, false
	}
	return c.SaveRAM(), true
}

// LoadBattery restores external RAM saved by SaveBattery.
func (s *Session) LoadBattery(data []byte) error {
	c := s.mmu.Cartridge()
	if c == nil || !c.HasBattery() {
		return fmt.Errorf("emu: cartridge has no battery RAM")
	}
	return c.LoadRAM(data)
}

func (s *Session) CPU() *cpu.CPU              { return s.cpu }
func (s *Session) MMU() *mmu.MMU              { return s.mmu }
func (s *Session) Timer() *timer.Timer        { return s.timer }
func (s *Session) LCD() *ppu.LCD              { return s.lcd }
func (s *Session) Cartridge() *cart.Cartridge { return s.mmu.Cartridge() }
func (s *Session) Framebuffer() []byte        { return s.lcd.Framebuffer() }
func (s *Session) Cycles() uint64             { return s.cycles }
