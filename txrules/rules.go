//版权所有（c）2016-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

//Package txrules提供每个交易输出都必须遵守的金额和脚本大小规则，
//违反这些规则的交易会被网络拒绝。
package txrules

import (
	"errors"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
)

//违反交易规则
var (
	ErrAmountNegative   = errors.New("transaction output amount is negative")
	ErrAmountExceedsMax = errors.New("transaction output amount exceeds maximum value")
	ErrTotalExceedsMax  = errors.New("total transaction output amount exceeds maximum value")
	ErrScriptTooLarge   = errors.New("transaction output script exceeds maximum size")
)

//CheckAmount检查单个金额是否在0到货币供应上限之间。
func CheckAmount(amount btcutil.Amount) error {
	if amount < 0 {
		return ErrAmountNegative
	}
	if amount > btcutil.MaxSatoshi {
		return ErrAmountExceedsMax
	}
	return nil
}

//CheckOutput对单个交易输出执行简单的共识检查。
func CheckOutput(output *wire.TxOut) error {
	if err := CheckAmount(btcutil.Amount(output.Value)); err != nil {
		return err
	}
	if len(output.PkScript) > txscript.MaxScriptSize {
		return ErrScriptTooLarge
	}
	return nil
}

//CheckOutputs检查每个输出，并确保所有输出的总额也不超过
//货币供应上限。累加在每一步都做检查，因此不会溢出。
func CheckOutputs(outputs []*wire.TxOut) error {
	var total btcutil.Amount
	for _, output := range outputs {
		if err := CheckOutput(output); err != nil {
			return err
		}
		value := btcutil.Amount(output.Value)
		if total > btcutil.MaxSatoshi-value {
			return ErrTotalExceedsMax
		}
		total += value
	}
	return nil
}
