// internal/config/config.go
package config

type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Device   DeviceConfig   `yaml:"device"`
	Paths    PathsConfig    `yaml:"paths"`
	Log      LogConfig      `yaml:"log"`
	DailyLog DailyLogConfig `yaml:"dailylog"`
	Store    StoreConfig    `yaml:"store"`
	Web      WebConfig      `yaml:"web"`
	Graph    GraphConfig    `yaml:"graph"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Path        string `yaml:"path"`
	BaudRate    int    `yaml:"baud_rate"`
	DataBits    int    `yaml:"data_bits"`
	Parity      string `yaml:"parity"`
	StopBits    int    `yaml:"stop_bits"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	ReadDelayUs int    `yaml:"read_delay_us"`
	Retries     int    `yaml:"retries"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	Model       string `yaml:"model"`
	SlaveID     uint8  `yaml:"slave_id"`
	LogCapacity int    `yaml:"log_capacity"`
}

// ---- OUTPUT PATHS ----

type PathsConfig struct {
	LogDir     string `yaml:"log_dir"`
	WebDir     string `yaml:"web_dir"`
	StatusFile string `yaml:"status_file"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// ---- DAILY LOG ----

type DailyLogConfig struct {
	AppendPolicy string `yaml:"append_policy"`

	// nil means the default (true)
	ExcludeToday *bool `yaml:"exclude_today"`
}

// ---- STORE ----

type StoreConfig struct {
	SQLitePath string `yaml:"sqlite_path"` // empty disables the mirror
}

// ---- WEB ----

type WebConfig struct {
	Listen string `yaml:"listen"`
}

// ---- GRAPH ----

type GraphConfig struct {
	VoltageScale float64 `yaml:"voltage_scale"`
}

// ExcludesToday reports the effective exclude_today setting.
func (d DailyLogConfig) ExcludesToday() bool {
	return d.ExcludeToday == nil || *d.ExcludeToday
}
