// Package config loads stopover's settings.
//
// Settings start from [Default], are overlaid by a TOML or YAML file, and are
// finally overridden by STOPOVER_* environment variables (a .env file in the
// working directory is honoured). The result is converted into the typed
// inputs of each package: [graph.Rules], [search.Config], [flight.Window].
package config

import "time"

// Config is the full configuration file.
type Config struct {
	Data    Data    `toml:"data" yaml:"data" json:"data"`
	Zones   Zones   `toml:"zones" yaml:"zones" json:"zones"`
	Search  Search  `toml:"search" yaml:"search" json:"search"`
	Layover Layover `toml:"layover" yaml:"layover" json:"layover"`
	Cache   Cache   `toml:"cache" yaml:"cache" json:"cache"`
	Store   Store   `toml:"store" yaml:"store" json:"store"`
}

// Data locates the flight schedule.
type Data struct {
	Path        string `toml:"path" yaml:"path" json:"path"`
	SkipInvalid bool   `toml:"skip_invalid" yaml:"skip_invalid" json:"skip_invalid"`
}

// Zones maps airports to IANA time zones.
type Zones struct {
	Default  string            `toml:"default" yaml:"default" json:"default"`
	Airports map[string]string `toml:"airports" yaml:"airports" json:"airports"`
}

// Search holds the itinerary limits.
type Search struct {
	Home        string   `toml:"home" yaml:"home" json:"home"`
	RegionalEnd []string `toml:"regional_end" yaml:"regional_end" json:"regional_end"`

	DestCap     int `toml:"dest_cap" yaml:"dest_cap" json:"dest_cap"`
	MinDests    int `toml:"min_dests" yaml:"min_dests" json:"min_dests"`
	MaxDupDests int `toml:"max_dup_dests" yaml:"max_dup_dests" json:"max_dup_dests"`

	MaxTripDuration Duration `toml:"max_trip_duration" yaml:"max_trip_duration" json:"max_trip_duration"`
	MinHomeLayover  Duration `toml:"min_home_layover" yaml:"min_home_layover" json:"min_home_layover"`
	MaxHomeLayover  Duration `toml:"max_home_layover" yaml:"max_home_layover" json:"max_home_layover"`

	// WindowStart and WindowEnd are UTC dates bounding every flight.
	WindowStart Date `toml:"window_start" yaml:"window_start" json:"window_start"`
	WindowEnd   Date `toml:"window_end" yaml:"window_end" json:"window_end"`
	// LatestStart, if set, is the last UTC date a trip may begin.
	LatestStart Date `toml:"latest_start" yaml:"latest_start" json:"latest_start"`

	// Workers is the number of parallel searches; 0 means all CPUs but one.
	Workers          int   `toml:"workers" yaml:"workers" json:"-"`
	ProgressInterval int64 `toml:"progress_interval" yaml:"progress_interval" json:"-"`
}

// Layover holds the connection rules.
type Layover struct {
	MinDay   Duration `toml:"min_day" yaml:"min_day" json:"min_day"`
	MaxDay   Duration `toml:"max_day" yaml:"max_day" json:"max_day"`
	MinNight Duration `toml:"min_night" yaml:"min_night" json:"min_night"`
	MaxNight Duration `toml:"max_night" yaml:"max_night" json:"max_night"`

	OvernightThreshold Duration `toml:"overnight_threshold" yaml:"overnight_threshold" json:"overnight_threshold"`
	OvernightCheckHour int      `toml:"overnight_check_hour" yaml:"overnight_check_hour" json:"overnight_check_hour"`
	OvernightAirports  []string `toml:"overnight_airports" yaml:"overnight_airports" json:"overnight_airports"`
}

// Backend names for Cache and Store.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Cache selects where finished search results are kept.
type Cache struct {
	Backend       string   `toml:"backend" yaml:"backend" json:"-"`
	Dir           string   `toml:"dir" yaml:"dir" json:"-"`
	TTL           Duration `toml:"ttl" yaml:"ttl" json:"-"`
	RedisAddr     string   `toml:"redis_addr" yaml:"redis_addr" json:"-"`
	RedisPassword string   `toml:"redis_password" yaml:"redis_password" json:"-"`
	RedisDB       int      `toml:"redis_db" yaml:"redis_db" json:"-"`
}

// Store selects where run history is written.
type Store struct {
	Backend  string `toml:"backend" yaml:"backend" json:"-"`
	Dir      string `toml:"dir" yaml:"dir" json:"-"`
	MongoURI string `toml:"mongo_uri" yaml:"mongo_uri" json:"-"`
	MongoDB  string `toml:"mongo_db" yaml:"mongo_db" json:"-"`
}

// Default returns the built-in configuration: a Boston-based search over
// the autumn 2025 schedule.
func Default() *Config {
	return &Config{
		Data: Data{Path: "flights.csv"},
		Zones: Zones{
			Default: "America/New_York",
			Airports: map[string]string{
				"ABQ": "America/Phoenix",
				"DEN": "America/Phoenix",
				"BQN": "America/Puerto_Rico",
				"PSE": "America/Puerto_Rico",
				"SJU": "America/Puerto_Rico",
				"STT": "America/Puerto_Rico",
				"STX": "America/Puerto_Rico",
				"DFW": "America/Chicago",
				"DTW": "America/Chicago",
				"IAH": "America/Chicago",
				"MSY": "America/Chicago",
				"MKE": "America/Chicago",
				"ORD": "America/Chicago",
				"LAS": "America/Los_Angeles",
				"PHX": "America/Los_Angeles",
				"LAX": "America/Los_Angeles",
			},
		},
		Search: Search{
			Home:            "BOS",
			RegionalEnd:     []string{"PVD", "ORH"},
			DestCap:         25,
			MinDests:        15,
			MaxDupDests:     3,
			MaxTripDuration: Duration(7 * 24 * time.Hour),
			MinHomeLayover:  Duration(3*24*time.Hour + 6*time.Hour),
			MaxHomeLayover:  Duration(7 * 24 * time.Hour),
			WindowStart:     NewDate(2025, time.September, 16),
			WindowEnd:       NewDate(2025, time.December, 15),
		},
		Layover: Layover{
			MinDay:             Duration(50 * time.Minute),
			MaxDay:             Duration(18 * time.Hour),
			MinNight:           Duration(8 * time.Hour),
			MaxNight:           Duration(18 * time.Hour),
			OvernightThreshold: Duration(3 * time.Hour),
			OvernightCheckHour: 3,
			OvernightAirports:  []string{"RDU", "DCA", "BUF", "PVD", "PIT"},
		},
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       Duration(7 * 24 * time.Hour),
			RedisAddr: "localhost:6379",
		},
		Store: Store{
			Backend:  BackendFile,
			MongoURI: "mongodb://localhost:27017",
			MongoDB:  "stopover",
		},
	}
}
