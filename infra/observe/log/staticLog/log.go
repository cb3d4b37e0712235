// Package staticLog 进程级logger, 控制台输出, 可选lumberjack滚动文件
package staticLog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log = newDefault()

type Options struct {
	Level      string
	File       string // 为空则只写stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Setup 按配置重设全局Log, 返回的closer用于关闭滚动文件
func Setup(opt Options) (io.Closer, error) {
	lvl := logrus.InfoLevel
	if opt.Level != "" {
		parsed, err := logrus.ParseLevel(opt.Level)
		if err != nil {
			return nil, err
		}
		lvl = parsed
	}
	Log.SetLevel(lvl)

	if opt.File == "" {
		Log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}
	roll := &lumberjack.Logger{
		Filename:   opt.File,
		MaxSize:    opt.MaxSizeMB,
		MaxBackups: opt.MaxBackups,
		MaxAge:     opt.MaxAgeDays,
	}
	Log.SetOutput(io.MultiWriter(os.Stderr, roll))
	return roll, nil
}
