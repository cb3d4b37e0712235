// Package conf 运行配置, yaml加载, atomic.Value 存当前配置供无锁读取
package conf

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"volcombine/infra/errorx"
	"volcombine/infra/errorx/errCode"

	"gopkg.in/yaml.v3"
)

type SeriesColumn struct {
	Column string `yaml:"column"` // csv列名
	Name   string `yaml:"name"`   // 展示名, 为空时用列名
}

type DataConfig struct {
	Path       string         `yaml:"path"`
	DateColumn string         `yaml:"date_column"`
	DateLayout string         `yaml:"date_layout"`
	Series     []SeriesColumn `yaml:"series"`
}

// HAR 三个分量的回看窗口
type FeatureConfig struct {
	Daily   int `yaml:"daily"`
	Weekly  int `yaml:"weekly"`
	Monthly int `yaml:"monthly"`
}

type WalkForwardConfig struct {
	Horizons     []int  `yaml:"horizons"`
	Start        string `yaml:"start"` // 为空表示从头开始
	End          string `yaml:"end"`   // 为空或超出数据范围时截到最后一个日期
	PurgeOverlap bool   `yaml:"purge_overlap"`
	Workers      int    `yaml:"workers"`
}

type ReportConfig struct {
	PredictionsCSV string `yaml:"predictions_csv"`
	Decimals       int32  `yaml:"decimals"`
	WeightBins     int    `yaml:"weight_bins"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Config struct {
	Data        DataConfig        `yaml:"data"`
	Features    FeatureConfig     `yaml:"features"`
	WalkForward WalkForwardConfig `yaml:"walkforward"`
	Report      ReportConfig      `yaml:"report"`
	Log         LogConfig         `yaml:"log"`
}

var cfgValue atomic.Value // stores *Config

func Default() *Config {
	return &Config{
		Data: DataConfig{
			DateColumn: "date",
			DateLayout: time.DateOnly,
		},
		Features:    FeatureConfig{Daily: 1, Weekly: 5, Monthly: 22},
		WalkForward: WalkForwardConfig{Horizons: []int{1, 5, 10, 22}, Workers: 1},
		Report:      ReportConfig{Decimals: 6, WeightBins: 10},
		Log:         LogConfig{Level: "info", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 28},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errorx.Wrap(errCode.IO_FAILURE, err, "read yaml")
	}
	return Parse(b)
}

// Parse 在默认值之上覆盖yaml内容, 然后规范化并校验
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errorx.Wrap(errCode.CONFIG_INVALID, err, "unmarshal yaml")
	}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) normalize() error {
	c.Data.DateColumn = strings.TrimSpace(c.Data.DateColumn)
	if len(c.Data.Series) != 2 {
		return invalid("data.series must list exactly 2 columns, got %d", len(c.Data.Series))
	}
	for i := range c.Data.Series {
		s := &c.Data.Series[i]
		s.Column = strings.TrimSpace(s.Column)
		s.Name = strings.TrimSpace(s.Name)
		if s.Column == "" {
			return invalid("data.series[%d].column is empty", i)
		}
		if s.Name == "" {
			s.Name = s.Column
		}
	}
	if c.Data.Series[0].Column == c.Data.Series[1].Column {
		return invalid("data.series columns must differ")
	}

	f := c.Features
	if f.Daily <= 0 || f.Weekly <= 0 || f.Monthly <= 0 {
		return invalid("features windows must be > 0: %+v", f)
	}

	// horizon 去重排序
	seen := make(map[int]bool, len(c.WalkForward.Horizons))
	hs := make([]int, 0, len(c.WalkForward.Horizons))
	for _, h := range c.WalkForward.Horizons {
		if h <= 0 {
			return invalid("invalid horizon %d", h)
		}
		if !seen[h] {
			seen[h] = true
			hs = append(hs, h)
		}
	}
	if len(hs) == 0 {
		return invalid("walkforward.horizons is empty")
	}
	sort.Ints(hs)
	c.WalkForward.Horizons = hs
	if c.WalkForward.Workers <= 0 {
		c.WalkForward.Workers = 1
	}

	if _, err := c.StartTime(); err != nil {
		return err
	}
	if _, err := c.EndTime(); err != nil {
		return err
	}
	if c.Report.Decimals < 0 {
		c.Report.Decimals = 6
	}
	if c.Report.WeightBins <= 0 {
		c.Report.WeightBins = 10
	}
	return nil
}

// StartTime 为空返回零值时间
func (c *Config) StartTime() (time.Time, error) {
	return c.parseDate("walkforward.start", c.WalkForward.Start)
}

// EndTime 为空返回零值时间, 调用方按数据最后日期截断
func (c *Config) EndTime() (time.Time, error) {
	return c.parseDate("walkforward.end", c.WalkForward.End)
}

func (c *Config) parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(c.Data.DateLayout, s)
	if err != nil {
		return time.Time{}, errorx.Wrap(errCode.CONFIG_INVALID, err, field)
	}
	return t, nil
}

func invalid(format string, args ...any) error {
	return errorx.New(errCode.CONFIG_INVALID, fmt.Sprintf(format, args...))
}

func Init(path string) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	Set(c)
	return nil
}

func Set(c *Config) {
	cfgValue.Store(c)
}

// Get 未初始化时返回默认配置
func Get() *Config {
	cAny := cfgValue.Load()
	if cAny == nil {
		return Default()
	}
	return cAny.(*Config)
}
