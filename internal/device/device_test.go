// internal/device/device_test.go
package device

import (
	"math"
	"strings"
	"testing"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDecodeSunSaverLog(t *testing.T) {
	d := []uint16{
		0x1234, // hourmeter low word
		0xAB05, // alarm low byte 0xAB, hourmeter high byte 0x05
		0x0102, // alarm high word
		16384,  // Vb min
		20480,  // Vb max
		123,    // Ah charge
		45,     // Ah load
		0x0003, // array faults
		0x0010, // load faults
		32768,  // Va max
		60, 0, 300,
	}

	s, err := DecodeSunSaverLog(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.HourMeter != 0x051234 {
		t.Fatalf("hourmeter got=0x%X want=0x51234", s.HourMeter)
	}
	if s.Alarms != 0x0102AB {
		t.Fatalf("alarms got=0x%X want=0x102AB", s.Alarms)
	}
	if !near(s.BatteryVoltageMin, 50.0) || !near(s.BatteryVoltageMax, 62.5) {
		t.Fatalf("vb got=%v/%v want=50/62.5", s.BatteryVoltageMin, s.BatteryVoltageMax)
	}
	if !near(s.ChargeAmpHours, 12.3) || !near(s.LoadAmpHours, 4.5) {
		t.Fatalf("ah got=%v/%v want=12.3/4.5", s.ChargeAmpHours, s.LoadAmpHours)
	}
	if s.ArrayFaults != 3 || s.LoadFaults != 0x10 {
		t.Fatalf("faults got=%d/%d", s.ArrayFaults, s.LoadFaults)
	}
	if !near(s.ArrayVoltageMax, 100.0) {
		t.Fatalf("va max got=%v want=100", s.ArrayVoltageMax)
	}
	if s.TimeAbsorb != 60 || s.TimeEqualize != 0 || s.TimeFloat != 300 {
		t.Fatalf("stage times got=%d/%d/%d", s.TimeAbsorb, s.TimeEqualize, s.TimeFloat)
	}
}

func TestDecodeSunSaverLog_ErasedSlotIsSentinel(t *testing.T) {
	d := make([]uint16, 13)
	for i := range d {
		d[i] = 0xFFFF
	}
	s, err := DecodeSunSaverLog(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.HourMeter != dailylog.HourMeterErased || !s.IsSentinel() {
		t.Fatalf("got hourmeter=0x%X, want erased sentinel", s.HourMeter)
	}
}

func TestDecodeSunSaverLog_ShortBlock(t *testing.T) {
	if _, err := DecodeSunSaverLog(make([]uint16, 12)); err == nil {
		t.Fatalf("expected error for short block")
	}
}

func TestSunSaverStatus(t *testing.T) {
	m, ok := Lookup(SunSaverMPPT)
	if !ok || m.Status == nil || !m.HasLog() {
		t.Fatalf("sunsaver-mppt must have status and log layouts")
	}

	regs := make([]uint16, 45)
	regs[3] = 16384
	regs[9] = uint16(dailylog.StateNight)

	st, err := m.Status.Decode(regs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ChargeState != dailylog.StateNight {
		t.Fatalf("charge state got=%v want=Night", st.ChargeState)
	}
	if !near(st.ArrayCurrent, 79.16/2) {
		t.Fatalf("array current got=%v want=%v", st.ArrayCurrent, 79.16/2)
	}
}

func TestLogLayoutBlocks(t *testing.T) {
	m, _ := Lookup(SunSaverMPPT)
	blocks := m.Log.Blocks(m.Log.Capacity)

	if len(blocks) != 32 {
		t.Fatalf("got %d blocks want 32", len(blocks))
	}
	if blocks[0].Address != 0x8000 || blocks[31].Address != 0x81F0 {
		t.Fatalf("addresses got first=0x%X last=0x%X", blocks[0].Address, blocks[31].Address)
	}
	for _, b := range blocks {
		if b.Quantity != 13 {
			t.Fatalf("quantity got=%d want=13", b.Quantity)
		}
	}
}

func TestLookupAndNames(t *testing.T) {
	want := []string{RelayDriver, SunSaverDuo, SunSaverMPPT, SureSine, TriStarMPPT, TriStarPWM}
	got := Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got=%v want=%v", got, want)
	}

	if _, ok := Lookup("prostar"); ok {
		t.Fatalf("unknown model must not resolve")
	}

	rd, _ := Lookup(RelayDriver)
	if rd.DefaultSlave != 9 {
		t.Fatalf("relay driver slave got=%d want=9", rd.DefaultSlave)
	}
	for _, n := range []string{SunSaverDuo, TriStarPWM, TriStarMPPT, SureSine, RelayDriver} {
		m, _ := Lookup(n)
		if m.HasLog() {
			t.Fatalf("%s must not expose a log layout", n)
		}
	}
}

func TestTriStarMPPTFixedPoint(t *testing.T) {
	m, _ := Lookup(TriStarMPPT)
	rs, err := m.Basic.Decode([]uint16{180, 32768, 80, 16384, 0x0102})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byName := map[string]Reading{}
	for _, r := range rs {
		byName[r.Name] = r
	}
	if !near(byName["V_PU"].Value, 180.5) {
		t.Fatalf("V_PU got=%v want=180.5", byName["V_PU"].Value)
	}
	if !near(byName["I_PU"].Value, 80.25) {
		t.Fatalf("I_PU got=%v want=80.25", byName["I_PU"].Value)
	}
	if got := byName["ver_sw"].String(); got != "ver_sw = 0x102" {
		t.Fatalf("got=%q", got)
	}
}

func TestSectionDecode_ShortBlock(t *testing.T) {
	m, _ := Lookup(SunSaverDuo)
	if _, err := m.Basic.Decode([]uint16{1, 2}); err == nil {
		t.Fatalf("expected error for short block")
	}
}

func TestSureSineFullDump(t *testing.T) {
	m, _ := Lookup(SureSine)
	secs := m.Sections(true)
	if len(secs) != 3 {
		t.Fatalf("got %d sections want 3", len(secs))
	}

	ram := make([]uint16, 17)
	ram[7] = 0x0012  // over-current, HVD
	ram[8] = 0x0000  // no alarms
	ram[10] = 0x0009 // switches 1 and 4 on
	ram[11] = 1      // load on
	ram[12] = 128    // 50 %

	rs, err := secs[0].Decode(ram)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byName := map[string]Reading{}
	for _, r := range rs {
		byName[r.Name] = r
	}

	fault := byName["fault"]
	if strings.Join(fault.Flags, ",") != "Over-current,HVD" {
		t.Fatalf("fault flags got=%v", fault.Flags)
	}
	if got := byName["alarm"].String(); got != "alarm = 0\n\tNo alarms" {
		t.Fatalf("alarm got=%q", got)
	}
	sw := byName["dip_switch"].Flags
	if len(sw) != 4 || !strings.HasPrefix(sw[0], "ON") || !strings.HasPrefix(sw[1], "OFF") || !strings.HasPrefix(sw[3], "ON") {
		t.Fatalf("dip switches got=%v", sw)
	}
	if byName["load_state"].Text != "Load On" {
		t.Fatalf("load state got=%q", byName["load_state"].Text)
	}
	if got := byName["mod_index"].String(); got != "mod_index = 50.00 %" {
		t.Fatalf("mod index got=%q", got)
	}

	id := make([]uint16, 8)
	id[0] = 4321
	id[4] = uint16('B')<<8 | uint16('A')
	id[5] = uint16('D')<<8 | uint16('C')
	id[6] = uint16('2')<<8 | uint16('1')
	id[7] = uint16('4')<<8 | uint16('3')
	rs, err = secs[2].Decode(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rs[1].Text != "ABCD1234" {
		t.Fatalf("serial got=%q want=ABCD1234", rs[1].Text)
	}
}

func TestSectionsFallsBackToBasic(t *testing.T) {
	m, _ := Lookup(RelayDriver)
	secs := m.Sections(true)
	if len(secs) != 1 || secs[0].Block.Address != 0x0000 || secs[0].Block.Quantity != 5 {
		t.Fatalf("got=%+v", secs)
	}
}

func TestBitNames(t *testing.T) {
	got := BitNames(1|1<<18|1<<30, sunsaverAlarmNames)
	want := []string{"RTS open", "Power On Reset", "Bit 31"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("got=%v want=%v", got, want)
	}
	if BitNames(0, sunsaverAlarmNames) != nil {
		t.Fatalf("empty mask must yield no names")
	}
}

func TestEnumOutOfRange(t *testing.T) {
	f := Field{Name: "charge_state", Kind: KindEnum, Names: chargeStateNames}
	r, err := f.Decode([]uint16{99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Text != "Unknown" {
		t.Fatalf("got=%q want=Unknown", r.Text)
	}
}
