package wikigraph

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config tunes a graph build.  Zero values mean the default.
type Config struct {
	// Threads is the number of dump ranges decoded in parallel.
	Threads int `yaml:"threads"`
	// QueueSize is the capacity of each writer's record queue.
	QueueSize int `yaml:"queue_size"`
	// BatchSize is how many redirects the resolver keeps in flight.
	BatchSize int `yaml:"batch_size"`
	// BloomFalsePositiveRate sizes the resolver's key filter.
	BloomFalsePositiveRate float64 `yaml:"bloom_false_positive_rate"`
	// ReportFrequency is how many pages go by between progress logs.
	ReportFrequency int64 `yaml:"report_frequency"`
	// ReadBufferSize buffers compressed reads from the dump.
	ReadBufferSize int `yaml:"read_buffer_size"`
	// WriteBufferSize buffers artifact writes.
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// DefaultConfig is what an empty Config turns into.
var DefaultConfig = Config{
	Threads:                4,
	QueueSize:              1000,
	BatchSize:              10000,
	BloomFalsePositiveRate: 0.01,
	ReportFrequency:        100000,
	ReadBufferSize:         16 << 20,
	WriteBufferSize:        16 << 20,
}

// WithDefaults fills in unset fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig
	if c.Threads > 0 {
		d.Threads = c.Threads
	}
	if c.QueueSize > 0 {
		d.QueueSize = c.QueueSize
	}
	if c.BatchSize > 0 {
		d.BatchSize = c.BatchSize
	}
	if c.BloomFalsePositiveRate > 0 && c.BloomFalsePositiveRate < 1 {
		d.BloomFalsePositiveRate = c.BloomFalsePositiveRate
	}
	if c.ReportFrequency > 0 {
		d.ReportFrequency = c.ReportFrequency
	}
	if c.ReadBufferSize > 0 {
		d.ReadBufferSize = c.ReadBufferSize
	}
	if c.WriteBufferSize > 0 {
		d.WriteBufferSize = c.WriteBufferSize
	}
	return d
}

// LoadConfig reads a YAML config file.  Settings missing from the
// file get their defaults.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "reading config")
	}
	var c Config
	if err := yaml.UnmarshalStrict(b, &c); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %v", path)
	}
	return c.WithDefaults(), nil
}
