// internal/device/field.go
package device

import (
	"fmt"
	"strings"
)

// Kind selects how a field is decoded from its registers.
type Kind int

const (
	KindScaled     Kind = iota // raw * Scale
	KindRaw                    // unsigned integer
	KindSigned                 // two's complement int16
	KindHex                    // unsigned integer shown as 0x%X
	KindBits                   // bitmask, Names per bit
	KindEnum                   // index into Names
	KindSwitches               // bitmask, Switches[bit] = {off, on}
	KindFixedPoint             // reg[Offset] + reg[Offset+1]/65536
	KindASCII                  // Width registers, low byte first
)

// Block is one contiguous holding register read.
type Block struct {
	Address  uint16
	Quantity uint16
}

// Field maps registers of a Block to one named value.
type Field struct {
	Name     string
	Offset   int
	Kind     Kind
	Scale    float64
	Unit     string
	Decimals int

	Names    []string
	Switches [][2]string
	Width    int
	Empty    string // KindBits text when no bit is set
}

// Reading is one decoded field.
type Reading struct {
	Field
	Value float64
	Text  string   // KindHex, KindEnum, KindASCII
	Flags []string // KindBits, KindSwitches
}

func (f Field) span() int {
	switch f.Kind {
	case KindFixedPoint:
		return 2
	case KindASCII:
		return f.Width
	default:
		return 1
	}
}

// Decode reads f out of regs, which start at the field's block address.
func (f Field) Decode(regs []uint16) (Reading, error) {
	if f.Offset < 0 || f.Offset+f.span() > len(regs) {
		return Reading{}, fmt.Errorf("device: field %s: offset %d outside %d registers", f.Name, f.Offset, len(regs))
	}

	raw := regs[f.Offset]
	r := Reading{Field: f, Value: float64(raw)}

	switch f.Kind {
	case KindScaled:
		r.Value = float64(raw) * f.Scale
	case KindRaw:
	case KindSigned:
		r.Value = float64(int16(raw))
	case KindHex:
		r.Text = fmt.Sprintf("0x%X", raw)
	case KindBits:
		r.Flags = BitNames(uint32(raw), f.Names)
	case KindEnum:
		if int(raw) < len(f.Names) {
			r.Text = f.Names[raw]
		} else {
			r.Text = "Unknown"
		}
	case KindSwitches:
		for i, sw := range f.Switches {
			if raw&(1<<uint(i)) != 0 {
				r.Flags = append(r.Flags, sw[1])
			} else {
				r.Flags = append(r.Flags, sw[0])
			}
		}
	case KindFixedPoint:
		r.Value = float64(raw) + float64(regs[f.Offset+1])/65536.0
	case KindASCII:
		b := make([]byte, 0, 2*f.Width)
		for _, w := range regs[f.Offset : f.Offset+f.Width] {
			b = append(b, byte(w&0x00FF), byte(w>>8))
		}
		r.Text = strings.TrimRight(string(b), "\x00")
	default:
		return Reading{}, fmt.Errorf("device: field %s: unsupported kind %d", f.Name, f.Kind)
	}

	return r, nil
}

// String renders the reading as "name = value unit", the format of the
// register dump tools.
func (r Reading) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	sb.WriteString(" = ")

	switch r.Kind {
	case KindHex, KindASCII:
		sb.WriteString(r.Text)
	case KindEnum:
		fmt.Fprintf(&sb, "%d %s", int(r.Value), r.Text)
	case KindBits:
		fmt.Fprintf(&sb, "%d", int(r.Value))
		if len(r.Flags) == 0 {
			empty := r.Empty
			if empty == "" {
				empty = "None"
			}
			sb.WriteString("\n\t")
			sb.WriteString(empty)
		}
		for _, fl := range r.Flags {
			sb.WriteString("\n\t")
			sb.WriteString(fl)
		}
		return sb.String()
	case KindSwitches:
		fmt.Fprintf(&sb, "%d", int(r.Value))
		for i, fl := range r.Flags {
			fmt.Fprintf(&sb, "\n\tSwitch %d %s", i+1, fl)
		}
		return sb.String()
	case KindRaw, KindSigned:
		fmt.Fprintf(&sb, "%d", int64(r.Value))
	default:
		fmt.Fprintf(&sb, "%.*f", r.Decimals, r.Value)
	}

	if r.Unit != "" {
		sb.WriteString(" ")
		sb.WriteString(r.Unit)
	}
	return sb.String()
}

// BitNames lists the names of the bits set in mask. Bits past the end of
// names are reported by number.
func BitNames(mask uint32, names []string) []string {
	var out []string
	for i := 0; i < 32; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		if i < len(names) && names[i] != "" {
			out = append(out, names[i])
		} else {
			out = append(out, fmt.Sprintf("Bit %d", i+1))
		}
	}
	return out
}
