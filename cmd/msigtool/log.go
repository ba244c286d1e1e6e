//版权所有（c）2013-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/btcsuite/btcmultisig/multisig"
	"github.com/btcsuite/btcmultisig/sessiondb"
	"github.com/jrick/logrotate/rotator"
)

//logWriter把日志同时写到标准错误和轮转的日志文件。标准输出
//留给命令的结果。
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stderr.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	//backendLog是创建所有子系统日志记录器的后端。
	backendLog = btclog.NewBackend(logWriter{})

	//logRotator在initLogRotator之前为nil，此时只写标准错误。
	logRotator *rotator.Rotator

	log     = backendLog.Logger("TOOL")
	msigLog = backendLog.Logger("MSIG")
	ssdbLog = backendLog.Logger("SSDB")
)

func init() {
	multisig.UseLogger(msigLog)
	sessiondb.UseLogger(ssdbLog)
}

//subsystemLoggers把每个子系统标识映射到它的日志记录器。
var subsystemLoggers = map[string]btclog.Logger{
	"TOOL": log,
	"MSIG": msigLog,
	"SSDB": ssdbLog,
}

//initLogRotator初始化日志文件轮转。日志目录不存在时创建它。
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %v", err)
	}
	logRotator = r
	return nil
}

//closeLogRotator关闭日志文件，未初始化时什么也不做。
func closeLogRotator() {
	if logRotator != nil {
		logRotator.Close()
		logRotator = nil
	}
}

//setLogLevel设置子系统的日志级别。未知子系统被忽略。
func setLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

//setLogLevels把所有子系统设为同一个日志级别。
func setLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, logLevel)
	}
}
