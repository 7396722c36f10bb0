// internal/collector/collector.go
package collector

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
	"github.com/tamzrod/solar-logbook/internal/device"
	"github.com/tamzrod/solar-logbook/internal/poller"
)

// fcHolding is the function code every Morningstar register is read with.
const fcHolding = 3

// Request selects what one poll cycle reads from a device.
// Blocks are read in this order: status, log slots, sections.
type Request struct {
	Model    device.Model
	Status   bool
	Log      bool
	Capacity int // log slots to read; 0 means the model's ring size
	Sections []device.Section
}

// SectionReadings is one decoded register section.
type SectionReadings struct {
	Title    string
	Readings []device.Reading
}

// Snapshot is the decoded result of a poll cycle.
type Snapshot struct {
	At       time.Time
	Status   *device.Status
	Slots    []dailylog.Slot // physical ring order, sentinels included
	Sections []SectionReadings
}

func (r Request) capacity() int {
	if r.Capacity > 0 {
		return r.Capacity
	}
	if r.Model.Log != nil {
		return r.Model.Log.Capacity
	}
	return 0
}

func block(b device.Block) poller.ReadBlock {
	return poller.ReadBlock{FC: fcHolding, Address: b.Address, Quantity: b.Quantity}
}

// Reads returns the poll plan for r.
func (r Request) Reads() ([]poller.ReadBlock, error) {
	var out []poller.ReadBlock

	if r.Status {
		if r.Model.Status == nil {
			return nil, fmt.Errorf("collector: model %s exposes no status block", r.Model.Name)
		}
		out = append(out, block(r.Model.Status.Block))
	}
	if r.Log {
		if r.Model.Log == nil {
			return nil, fmt.Errorf("collector: model %s keeps no daily log", r.Model.Name)
		}
		for _, b := range r.Model.Log.Blocks(r.capacity()) {
			out = append(out, block(b))
		}
	}
	for _, s := range r.Sections {
		out = append(out, block(s.Block))
	}

	if len(out) == 0 {
		return nil, errors.New("collector: empty request")
	}
	return out, nil
}

// Decode turns a successful PollResult for r into a Snapshot.
func (r Request) Decode(res poller.PollResult) (Snapshot, error) {
	if res.Err != nil {
		return Snapshot{}, res.Err
	}

	want := 0
	if r.Status {
		want++
	}
	if r.Log {
		want += r.capacity()
	}
	want += len(r.Sections)
	if len(res.Blocks) != want {
		return Snapshot{}, fmt.Errorf("collector: got %d blocks, want %d", len(res.Blocks), want)
	}

	snap := Snapshot{At: res.At}
	next := 0

	if r.Status {
		st, err := r.Model.Status.Decode(res.Blocks[next].Registers)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Status = &st
		next++
	}

	if r.Log {
		n := r.capacity()
		snap.Slots = make([]dailylog.Slot, 0, n)
		for i := 0; i < n; i++ {
			s, err := r.Model.Log.Decode(res.Blocks[next].Registers)
			if err != nil {
				return Snapshot{}, fmt.Errorf("collector: slot %d: %w", i, err)
			}
			snap.Slots = append(snap.Slots, s)
			next++
		}
	}

	for _, sec := range r.Sections {
		rs, err := sec.Decode(res.Blocks[next].Registers)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Sections = append(snap.Sections, SectionReadings{Title: sec.Title, Readings: rs})
		next++
	}

	return snap, nil
}

// Collect runs one poll cycle for r on p.
func Collect(p *poller.Poller, r Request) (Snapshot, error) {
	res := p.PollOnce()
	if res.Err != nil {
		return Snapshot{}, res.Err
	}

	snap, err := r.Decode(res)
	if err != nil {
		return Snapshot{}, err
	}

	log.WithFields(log.Fields{
		"device": res.Device,
		"blocks": len(res.Blocks),
		"slots":  len(snap.Slots),
	}).Debug("poll complete")
	return snap, nil
}
