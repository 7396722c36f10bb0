// internal/device/model.go
package device

import (
	"fmt"
	"sort"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
)

// Section is one register block and the fields decoded from it.
type Section struct {
	Title  string
	Block  Block
	Fields []Field
}

// Decode decodes every field of the section from regs.
func (s Section) Decode(regs []uint16) ([]Reading, error) {
	if len(regs) < int(s.Block.Quantity) {
		return nil, fmt.Errorf("device: section %q: got %d registers, want %d", s.Title, len(regs), s.Block.Quantity)
	}
	out := make([]Reading, 0, len(s.Fields))
	for _, f := range s.Fields {
		r, err := f.Decode(regs)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// LogLayout describes the daily log ring in device memory.
type LogLayout struct {
	Base      uint16
	Stride    uint16
	Registers uint16
	Capacity  int

	Decode func(regs []uint16) (dailylog.Slot, error)
}

// Blocks returns one read per ring slot for the first capacity slots.
func (l LogLayout) Blocks(capacity int) []Block {
	out := make([]Block, 0, capacity)
	for i := 0; i < capacity; i++ {
		out = append(out, Block{
			Address:  l.Base + uint16(i)*l.Stride,
			Quantity: l.Registers,
		})
	}
	return out
}

// StatusLayout locates the live values the "newest record is today"
// heuristic needs.
type StatusLayout struct {
	Block  Block
	Decode func(regs []uint16) (Status, error)
}

// Status is the live controller state relevant to log dating.
type Status struct {
	ArrayCurrent float64
	ChargeState  dailylog.ChargeState
}

// Model is one supported controller.
type Model struct {
	Name         string
	Title        string
	DefaultSlave uint8

	Basic Section
	Full  []Section

	Status *StatusLayout
	Log    *LogLayout

	AlarmNames      []string
	ArrayFaultNames []string
	LoadFaultNames  []string
}

// HasLog reports whether the model keeps a daily log ring.
func (m Model) HasLog() bool { return m.Log != nil }

// Sections returns the full dump sections, falling back to the basic read.
func (m Model) Sections(full bool) []Section {
	if full && len(m.Full) > 0 {
		return m.Full
	}
	return []Section{m.Basic}
}

var models = map[string]Model{}

func register(m Model) {
	if _, dup := models[m.Name]; dup {
		panic("device: duplicate model " + m.Name)
	}
	models[m.Name] = m
}

// Lookup returns the model registered under name.
func Lookup(name string) (Model, bool) {
	m, ok := models[name]
	return m, ok
}

// Names lists registered model names in sorted order.
func Names() []string {
	out := make([]string, 0, len(models))
	for n := range models {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
