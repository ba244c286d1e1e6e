//版权所有（c）2016-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package cfgutil

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

//ExpandPath展开环境变量和开头的~或~user，并清理路径。
func ExpandPath(path string) string {
	//os.ExpandEnv不处理Windows的%VARIABLE%，但$VARIABLE在那里也能用。
	path = os.ExpandEnv(path)
	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	path = path[1:]
	pathSeparators := string(os.PathSeparator)
	if runtime.GOOS == "windows" {
		pathSeparators += "/"
	}
	userName := ""
	if i := strings.IndexAny(path, pathSeparators); i != -1 {
		userName = path[:i]
		path = path[i:]
	} else {
		userName, path = path, ""
	}

	var u *user.User
	var err error
	if userName == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(userName)
	}
	homeDir := "."
	if err == nil && u.HomeDir != "" {
		homeDir = u.HomeDir
	}
	return filepath.Join(homeDir, path)
}

//ExplicitPath是一个路径选项，记录用户是否设置过它。另一个选项的
//默认值依赖于它时需要区分保留默认值和显式设为默认值。
//通过选项设置的值会被ExpandPath展开。
type ExplicitPath struct {
	Value         string
	explicitlySet bool
}

//NewExplicitPath返回带默认值的路径选项。默认值按原样保存。
func NewExplicitPath(defaultValue string) *ExplicitPath {
	return &ExplicitPath{Value: defaultValue}
}

//ExplicitlySet报告值是否经由flags.Unmarshaler设置过。
func (e *ExplicitPath) ExplicitlySet() bool { return e.explicitlySet }

//Join在路径下拼接子路径。
func (e *ExplicitPath) Join(elem ...string) string {
	return filepath.Join(append([]string{e.Value}, elem...)...)
}

//MarshalFlag实现flags.Marshaler接口。
func (e *ExplicitPath) MarshalFlag() (string, error) { return e.Value, nil }

//UnmarshalFlag实现flags.Unmarshaler接口。
func (e *ExplicitPath) UnmarshalFlag(value string) error {
	e.Value = ExpandPath(value)
	e.explicitlySet = true
	return nil
}
