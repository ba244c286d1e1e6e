//版权所有（c）2015-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package cfgutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcutil"
)

//amountUnits把金额后缀映射到单位。没有后缀时按BTC计。
var amountUnits = map[string]btcutil.AmountUnit{
	"btc":     btcutil.AmountBTC,
	"mbtc":    btcutil.AmountMilliBTC,
	"ubtc":    btcutil.AmountMicroBTC,
	"bits":    btcutil.AmountMicroBTC,
	"sat":     btcutil.AmountSatoshi,
	"satoshi": btcutil.AmountSatoshi,
}

//ParseAmount解析"<数值> [单位]"形式的金额，单位可以是BTC、mBTC、
//uBTC、bits或sat，不区分大小写。聪金额必须是整数，负数被拒绝。
func ParseAmount(s string) (btcutil.Amount, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	unit := btcutil.AmountBTC
	if len(fields) == 2 {
		u, ok := amountUnits[strings.ToLower(fields[1])]
		if !ok {
			return 0, fmt.Errorf("unknown amount unit %q", fields[1])
		}
		unit = u
	}

	if unit == btcutil.AmountSatoshi {
		sat, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid satoshi amount %q", fields[0])
		}
		if sat < 0 {
			return 0, errors.New("amount is negative")
		}
		return btcutil.Amount(sat), nil
	}

	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", fields[0])
	}
	//unit是以10为底相对BTC的指数，例如mBTC为-3。
	amount, err := btcutil.NewAmount(f * pow10(int(unit)))
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, errors.New("amount is negative")
	}
	return amount, nil
}

func pow10(exp int) float64 {
	f := 1.0
	for ; exp > 0; exp-- {
		f *= 10
	}
	for ; exp < 0; exp++ {
		f /= 10
	}
	return f
}

//AmountFlag让btcutil.Amount可以直接作为go-flags选项字段，
//接受ParseAmount的所有格式。
type AmountFlag struct {
	btcutil.Amount
}

//NewAmountFlag返回带默认值的AmountFlag。
func NewAmountFlag(defaultValue btcutil.Amount) *AmountFlag {
	return &AmountFlag{defaultValue}
}

//MarshalFlag实现flags.Marshaler接口。
func (a *AmountFlag) MarshalFlag() (string, error) {
	return a.Amount.String(), nil
}

//UnmarshalFlag实现flags.Unmarshaler接口。
func (a *AmountFlag) UnmarshalFlag(value string) error {
	amount, err := ParseAmount(value)
	if err != nil {
		return err
	}
	a.Amount = amount
	return nil
}
