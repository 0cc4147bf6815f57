package logger

import (
	"io"
	"log"
	"os"
)

// New 创建带组件前缀的日志器，注入到各组件中使用
func New(component string) *log.Logger {
	return log.New(os.Stdout, "["+component+"] ", log.LstdFlags|log.Lmicroseconds|log.Lmsgprefix)
}

// Discard 丢弃所有输出，测试用
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
