// internal/device/sunsaver.go
package device

import (
	"fmt"

	"github.com/tamzrod/solar-logbook/internal/dailylog"
)

const (
	ssmpptVoltScale   = 100.0 / 32768.0
	ssmpptCurrScale   = 79.16 / 32768.0
	ssmpptAmpHourStep = 0.1

	// SunSaverMPPT is the model name of the SunSaver MPPT controller.
	SunSaverMPPT = "sunsaver-mppt"
)

// daily log record: hourmeter, alarms, Vb min/max, Ah charge/load,
// faults, Va max, stage minutes
const ssmpptLogRegisters = 13

var sunsaverAlarmNames = []string{
	"RTS open",
	"RTS shorted",
	"RTS disconnected",
	"Ths open",
	"Ths shorted",
	"SSMPPT hot",
	"Current limit",
	"Current offset",
	"Undefined",
	"Undefined",
	"Uncalibrated",
	"RTS miswire",
	"Undefined",
	"Undefined",
	"Miswire",
	"FET open",
	"P12",
	"High Va current limit",
	"Power On Reset",
	"LVD Condition",
	"Log Timeout Alarm",
	"Alarm 22",
	"Alarm 23",
	"Alarm 24",
}

var sunsaverArrayFaultNames = []string{
	"Overcurrent",
	"FETs shorted",
	"Software bug",
	"Battery HVD",
	"Array HVD",
	"EEPROM setting edit (reset required)",
	"RTS shorted",
	"RTS was valid, now disconnected",
	"Local temperature sensor failed",
	"Fault 10",
	"Fault 11",
	"Fault 12",
	"Fault 13",
	"Fault 14",
	"Fault 15",
	"Fault 16",
}

var sunsaverLoadFaultNames = []string{
	"External short circuit",
	"Overcurrent",
	"FETs shorted",
	"Software bug",
	"HVD",
	"Heatsink over-temperature",
	"EEPROM setting edit (reset required)",
	"Fault 8",
}

var chargeStateNames = []string{
	"Start",
	"Night Check",
	"Disconnect",
	"Night",
	"Fault",
	"Bulk",
	"Absorption",
	"Float",
	"Equalize",
}

// DecodeSunSaverLog converts one raw log slot into physical units.
func DecodeSunSaverLog(d []uint16) (dailylog.Slot, error) {
	if len(d) < ssmpptLogRegisters {
		return dailylog.Slot{}, fmt.Errorf("device: log slot: got %d registers, want %d", len(d), ssmpptLogRegisters)
	}
	return dailylog.Slot{
		HourMeter:         uint32(d[0]) | uint32(d[1]&0x00FF)<<16,
		Alarms:            uint32(d[2])<<8 | uint32(d[1]>>8),
		BatteryVoltageMin: float64(d[3]) * ssmpptVoltScale,
		BatteryVoltageMax: float64(d[4]) * ssmpptVoltScale,
		ChargeAmpHours:    float64(d[5]) * ssmpptAmpHourStep,
		LoadAmpHours:      float64(d[6]) * ssmpptAmpHourStep,
		ArrayFaults:       d[7],
		LoadFaults:        d[8],
		ArrayVoltageMax:   float64(d[9]) * ssmpptVoltScale,
		TimeAbsorb:        d[10],
		TimeEqualize:      d[11],
		TimeFloat:         d[12],
	}, nil
}

// decodeSunSaverStatus reads Ic and charge_state from the RAM block at 0x0008.
func decodeSunSaverStatus(d []uint16) (Status, error) {
	if len(d) < 10 {
		return Status{}, fmt.Errorf("device: status block: got %d registers, want at least 10", len(d))
	}
	return Status{
		ArrayCurrent: float64(d[3]) * ssmpptCurrScale,
		ChargeState:  dailylog.ChargeState(d[9]),
	}, nil
}

var ssmpptADC = []Field{
	{Name: "adc_vb_f", Offset: 0, Kind: KindScaled, Scale: ssmpptVoltScale, Unit: "V", Decimals: 2},
	{Name: "adc_va_f", Offset: 1, Kind: KindScaled, Scale: ssmpptVoltScale, Unit: "V", Decimals: 2},
	{Name: "adc_vl_f", Offset: 2, Kind: KindScaled, Scale: ssmpptVoltScale, Unit: "V", Decimals: 2},
	{Name: "adc_ic_f", Offset: 3, Kind: KindScaled, Scale: ssmpptCurrScale, Unit: "A", Decimals: 2},
	{Name: "adc_il_f", Offset: 4, Kind: KindScaled, Scale: ssmpptCurrScale, Unit: "A", Decimals: 2},
}

func init() {
	status := Block{Address: 0x0008, Quantity: 45}

	full := append([]Field{}, ssmpptADC...)
	full = append(full,
		Field{Name: "T_hs", Offset: 5, Kind: KindSigned, Unit: "°C"},
		Field{Name: "T_batt", Offset: 6, Kind: KindSigned, Unit: "°C"},
		Field{Name: "T_amb", Offset: 7, Kind: KindSigned, Unit: "°C"},
		Field{Name: "T_rts", Offset: 8, Kind: KindSigned, Unit: "°C"},
		Field{Name: "charge_state", Offset: 9, Kind: KindEnum, Names: chargeStateNames},
	)

	register(Model{
		Name:         SunSaverMPPT,
		Title:        "SunSaver MPPT",
		DefaultSlave: 1,
		Basic: Section{
			Title:  "SunSaver MPPT",
			Block:  Block{Address: 0x0008, Quantity: 5},
			Fields: ssmpptADC,
		},
		Full: []Section{{
			Title:  "RAM Registers",
			Block:  status,
			Fields: full,
		}},
		Status: &StatusLayout{Block: status, Decode: decodeSunSaverStatus},
		Log: &LogLayout{
			Base:      0x8000,
			Stride:    0x0010,
			Registers: ssmpptLogRegisters,
			Capacity:  32,
			Decode:    DecodeSunSaverLog,
		},
		AlarmNames:      sunsaverAlarmNames,
		ArrayFaultNames: sunsaverArrayFaultNames,
		LoadFaultNames:  sunsaverLoadFaultNames,
	})
}
