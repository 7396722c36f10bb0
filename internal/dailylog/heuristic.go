// internal/dailylog/heuristic.go
package dailylog

// ChargeState is the controller's charging phase, Morningstar numbering.
type ChargeState uint16

const (
	StateStart ChargeState = iota
	StateNightCheck
	StateDisconnect
	StateNight
	StateFault
	StateBulk
	StateAbsorption
	StateFloat
	StateEqualize
)

var chargeStateNames = [...]string{
	"Start",
	"Night check",
	"Disconnect",
	"Night",
	"Fault",
	"Bulk charge",
	"Absorption",
	"Float",
	"Equalize",
}

func (s ChargeState) String() string {
	if int(s) < len(chargeStateNames) {
		return chargeStateNames[s]
	}
	return "Unknown"
}

// nightCurrentAmps is the array current below which the array is dark.
const nightCurrentAmps = 0.001

// IsNewestRecordFromToday guesses whether the newest log record was written
// this evening or last night.
//
// The device writes a record when it switches to night. If it is already
// night, the afternoon is over and the array is dark, the switch most likely
// happened today. This is a heuristic; the device does not report the
// creation time of its records.
func IsNewestRecordFromToday(state ChargeState, localHour int, arrayCurrentAmps float64) bool {
	return state == StateNight && localHour > 12 && arrayCurrentAmps < nightCurrentAmps
}
