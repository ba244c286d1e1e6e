//版权所有（c）2015-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package sessiondb

import "github.com/btcsuite/btclog"

//log默认被禁用，直到调用者通过UseLogger提供日志记录器。
var log btclog.Logger

func init() {
	DisableLog()
}

//DisableLog禁用所有库日志输出。
func DisableLog() {
	UseLogger(btclog.Disabled)
}

//UseLogger使用指定的记录器输出包日志信息。
func UseLogger(logger btclog.Logger) {
	log = logger
}
