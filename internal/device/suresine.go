// internal/device/suresine.go
package device

const sureSineVoltScale = 16.92 / 65536.0

func sureSineVolts(name string, offset int) Field {
	return scaled(name, offset, sureSineVoltScale, "V")
}

var sureSineFull = []Section{
	{
		Title: "RAM Registers",
		Block: Block{Address: 0x0000, Quantity: 17},
		Fields: []Field{
			sureSineVolts("adc_vb", 0),
			{Name: "adc_iac", Offset: 1, Kind: KindScaled, Scale: 16.92 / 32768.0, Unit: "A", Decimals: 4},
			sureSineVolts("adc_ths", 2),
			sureSineVolts("adc_remon", 3),
			sureSineVolts("Vb", 4),
			{Name: "Iac", Offset: 5, Kind: KindScaled, Scale: 16.92 / 32768.0, Unit: "A", Decimals: 4},
			{Name: "Ths", Offset: 6, Kind: KindSigned, Unit: "°C"},
			{
				Name: "fault", Offset: 7, Kind: KindBits, Empty: "No faults",
				Names: []string{
					"Reset",
					"Over-current",
					"not used",
					"Software",
					"HVD",
					"Hot (heatsink temp. over 95 C)",
					"DIP switch",
					"Settings Edit",
				},
			},
			{
				// the heatsink hot alarm has been seen on bit 5 as well as bit 3
				Name: "alarm", Offset: 8, Kind: KindBits, Empty: "No alarms",
				Names: []string{
					"Heatsink temp. sensor open",
					"Heatsink temp. sensor shorted",
					"not used",
					"Heatsink hot (above 80 C)",
					"",
					"Heatsink hot (above 80 C)",
				},
			},
			{
				Name: "dip_switch", Offset: 10, Kind: KindSwitches,
				Switches: [][2]string{
					{"OFF - Power Mode = Always On", "ON - Power Mode = Standby Mode"},
					{"OFF - LVD = 11.5 V, LVR = 12.6 V", "ON - LVD = 10.5 V, LVR = 11.6 V or custom settings"},
					{"OFF - Beeper Warning On", "ON - Beeper Warning Off"},
					{"OFF - Meterbus Protocol", "ON - MODBUS Protocol"},
				},
			},
			{
				Name: "load_state", Offset: 11, Kind: KindEnum,
				Names: []string{
					"Start-up",
					"Load On",
					"LVD Warning",
					"LVD (Low Voltage Disconnect)",
					"Fault State",
					"Load Disconnected",
					"Load Off",
					"not used",
					"Standby",
				},
			},
			{Name: "mod_index", Offset: 12, Kind: KindScaled, Scale: 100.0 / 256.0, Unit: "%", Decimals: 2},
			{Name: "volts", Offset: 13, Kind: KindRaw, Unit: "V"},
			{Name: "hertz", Offset: 14, Kind: KindRaw, Unit: "Hz"},
			{Name: "m_disconnect", Offset: 15, Kind: KindRaw},
			{Name: "modbus_reset", Offset: 16, Kind: KindRaw},
		},
	},
	{
		Title: "EEPROM Registers",
		Block: Block{Address: 0xE000, Quantity: 12},
		Fields: []Field{
			sureSineVolts("EVb_min", 0),
			sureSineVolts("EVb_max", 1),
			{Name: "Emodbus_id", Offset: 2, Kind: KindRaw},
			{Name: "Emeter_id", Offset: 3, Kind: KindRaw},
			sureSineVolts("EV_lvd2", 4),
			sureSineVolts("EV_lvr2", 5),
			sureSineVolts("EV_hvd2", 6),
			sureSineVolts("EV_hvr2", 7),
			{Name: "Et_lvd_warn2", Offset: 8, Kind: KindScaled, Scale: 0.1, Unit: "s", Decimals: 1},
			sureSineVolts("EV_lvdwarn_beep2", 9),
			sureSineVolts("EV_lvrwarn_beep2", 10),
			sureSineVolts("EV_startlvd2", 11),
		},
	},
	{
		Title: "EEPROM Identification",
		Block: Block{Address: 0xE040, Quantity: 8},
		Fields: []Field{
			{Name: "Ehourmeter", Offset: 0, Kind: KindRaw},
			{Name: "Eserial_no", Offset: 4, Kind: KindASCII, Width: 4},
		},
	},
}
