//版权所有（c）2013-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package netparams

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

//Params把链参数和工具在该网络上使用的数据目录名组合在
//一起。
type Params struct {
	*chaincfg.Params

	//DataDirName是应用数据目录下存放该网络会话的子目录。
	DataDirName string
}

//MainNetParams包含主网络（wire.MainNet）的参数。
var MainNetParams = Params{
	Params:      &chaincfg.MainNetParams,
	DataDirName: "mainnet",
}

//TestNet3Params包含测试网络第3版（wire.TestNet3）的参数。
var TestNet3Params = Params{
	Params:      &chaincfg.TestNet3Params,
	DataDirName: "testnet",
}

//RegressionNetParams包含回归测试网络（wire.TestNet）的参数。
var RegressionNetParams = Params{
	Params:      &chaincfg.RegressionNetParams,
	DataDirName: "regtest",
}

//SimNetParams包含模拟测试网络（wire.SimNet）的参数。
var SimNetParams = Params{
	Params:      &chaincfg.SimNetParams,
	DataDirName: "simnet",
}

var allParams = []*Params{
	&MainNetParams,
	&TestNet3Params,
	&RegressionNetParams,
	&SimNetParams,
}

//ByName按链参数名（例如"testnet3"）或数据目录名查找网络。
func ByName(name string) (*Params, error) {
	for _, p := range allParams {
		if p.Name == name || p.DataDirName == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("unknown network %q", name)
}
