package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例，仅供 main 与启动流程使用，模拟核心通过 SimContext 获取日志
var Log = logrus.New()

// Init 初始化全局日志
// level 支持 logrus 的所有级别，format 为 "json" 时输出 JSON，其余输出文本
func Init(level, format string) *logrus.Logger {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
	return Log
}

// Discard 返回丢弃所有输出的日志，用于测试
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// Component 返回带组件字段的日志条目
func Component(l *logrus.Logger, name string) *logrus.Entry {
	return l.WithField("component", name)
}
