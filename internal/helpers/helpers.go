//版权所有（c）2016-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

//Package helpers提供命令行工具展示交易时用到的小函数。
package helpers

import (
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
)

//SumOutputValues汇总输出金额。
func SumOutputValues(outputs []*wire.TxOut) (totalOutput btcutil.Amount) {
	for _, txOut := range outputs {
		totalOutput += btcutil.Amount(txOut.Value)
	}
	return totalOutput
}

//SignedSizeEstimate估计交易在每个输入都得到m个签名后的序列化
//大小。每个签名按73字节（72字节DER加哈希类型）计算，赎回
//脚本大小由调用者给出。
func SignedSizeEstimate(tx *wire.MsgTx, threshold, redeemScriptSize int) int {
	sigScriptSize := 1 + threshold*(1+73) + wire.VarIntSerializeSize(uint64(redeemScriptSize)) +
		redeemScriptSize
	size := tx.SerializeSizeStripped()
	for _, txIn := range tx.TxIn {
		size -= wire.VarIntSerializeSize(uint64(len(txIn.SignatureScript))) +
			len(txIn.SignatureScript)
		size += wire.VarIntSerializeSize(uint64(sigScriptSize)) + sigScriptSize
	}
	return size
}
