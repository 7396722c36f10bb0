// internal/device/models.go
package device

// Controllers without a daily log ring. Only their live registers are read.

const (
	SunSaverDuo = "sunsaver-duo"
	TriStarPWM  = "tristar-pwm"
	TriStarMPPT = "tristar-mppt"
	SureSine    = "suresine"
	RelayDriver = "relay-driver"
)

func scaled(name string, offset int, scale float64, unit string) Field {
	return Field{Name: name, Offset: offset, Kind: KindScaled, Scale: scale, Unit: unit, Decimals: 2}
}

func init() {
	register(Model{
		Name:         SunSaverDuo,
		Title:        "SunSaver Duo",
		DefaultSlave: 1,
		Basic: Section{
			Title: "SunSaver Duo",
			Block: Block{Address: 0x0000, Quantity: 5},
			Fields: []Field{
				scaled("vb1", 0, 1/1800.0, "V"),
				scaled("vb2", 1, 1/1800.0, "V"),
				scaled("va", 2, 1/1032.0, "V"),
				scaled("ia1", 3, 1/673.0, "A"),
				scaled("ia2", 4, 1/673.0, "A"),
			},
		},
	})

	register(Model{
		Name:         TriStarPWM,
		Title:        "TriStar PWM",
		DefaultSlave: 1,
		Basic: Section{
			Title: "TriStar PWM",
			Block: Block{Address: 0x0008, Quantity: 5},
			Fields: []Field{
				scaled("adc_vb_f", 0, 96.667/32768.0, "V"),
				scaled("adc_vs_f", 1, 96.667/32768.0, "V"),
				scaled("adc_vx_f", 2, 139.15/32768.0, "V"),
				scaled("adc_ipv_f", 3, 66.667/32768.0, "A"),
				scaled("adc_iload_f", 4, 316.67/32768.0, "A"),
			},
		},
	})

	register(Model{
		Name:         TriStarMPPT,
		Title:        "TriStar MPPT",
		DefaultSlave: 1,
		Basic: Section{
			Title: "TriStar MPPT",
			Block: Block{Address: 0x0000, Quantity: 5},
			Fields: []Field{
				{Name: "V_PU_hi", Offset: 0, Kind: KindRaw},
				{Name: "V_PU_lo", Offset: 1, Kind: KindRaw},
				{Name: "I_PU_hi", Offset: 2, Kind: KindRaw},
				{Name: "I_PU_lo", Offset: 3, Kind: KindRaw},
				{Name: "ver_sw", Offset: 4, Kind: KindHex},
				{Name: "V_PU", Offset: 0, Kind: KindFixedPoint, Decimals: 5},
				{Name: "I_PU", Offset: 2, Kind: KindFixedPoint, Decimals: 5},
			},
		},
	})

	register(Model{
		Name:         SureSine,
		Title:        "SureSine-300",
		DefaultSlave: 1,
		Basic: Section{
			Title: "SureSine-300",
			Block: Block{Address: 0x0000, Quantity: 5},
			Fields: []Field{
				scaled("adc_vb", 0, sureSineVoltScale, "V"),
				scaled("adc_iac", 1, 17.0/32768.0, "A"),
				scaled("adc_ths", 2, sureSineVoltScale, "V"),
				scaled("adc_remon", 3, sureSineVoltScale, "V"),
				scaled("Vb", 4, sureSineVoltScale, "V"),
			},
		},
		Full: sureSineFull,
	})

	register(Model{
		Name:         RelayDriver,
		Title:        "Relay Driver",
		DefaultSlave: 9,
		Basic: Section{
			Title: "Relay Driver",
			Block: Block{Address: 0x0000, Quantity: 5},
			Fields: []Field{
				scaled("adc_vb", 0, 78.421/32768.0, "V"),
				scaled("adc_vch1", 1, 78.421/32768.0, "V"),
				scaled("adc_vch2", 2, 78.421/32768.0, "V"),
				scaled("adc_vch3", 3, 78.421/32768.0, "V"),
				scaled("adc_vch4", 4, 78.421/32768.0, "V"),
			},
		},
	})
}
