//版权所有（c）2015-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package sessiondb

import (
	"errors"

	bbolt "github.com/coreos/bbolt"
)

var (
	//ErrDbDoesNotExist在不允许创建时打开不存在的数据库时返回。
	ErrDbDoesNotExist = errors.New("session database does not exist")

	//ErrDbNotOpen在数据库关闭后使用时返回。
	ErrDbNotOpen = errors.New("session database is not open")

	//ErrSessionExists在创建已存在的会话时返回。
	ErrSessionExists = errors.New("session already exists")

	//ErrSessionNotFound在查找不存在的会话时返回。
	ErrSessionNotFound = errors.New("session not found")

	//ErrNameRequired在会话名为空时返回。
	ErrNameRequired = errors.New("session name is required")

	//ErrUnknownVersion在会话行的版本不被支持时返回。
	ErrUnknownVersion = errors.New("unknown session row version")
)

//convertErr把部分bbolt错误转换为本包的错误。
func convertErr(err error) error {
	switch err {
	case bbolt.ErrDatabaseNotOpen:
		return ErrDbNotOpen
	case bbolt.ErrKeyRequired:
		return ErrNameRequired
	}
	return err
}
