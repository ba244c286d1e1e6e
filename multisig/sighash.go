//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

//signatureHash计算签名所承诺的摘要。目标输入的脚本被替换为
//subscript，其他输入的脚本按哈希类型规则清空，序列化后追加
//4字节哈希类型并做双SHA256。因为只依赖公开数据，所以每个签名方
//都能独立算出相同的哈希。
func signatureHash(msgTx *wire.MsgTx, idx int, subscript Script,
	hashType txscript.SigHashType) ([]byte, error) {

	if idx < 0 || idx >= len(msgTx.TxIn) {
		str := fmt.Sprintf("input index %d out of range [0, %d)", idx,
			len(msgTx.TxIn))
		return nil, newError(ErrInputIndex, str, nil)
	}
	hash, err := txscript.CalcSignatureHash(subscript.b, hashType, msgTx, idx)
	if err != nil {
		return nil, newError(ErrInvalidScriptParams, "unparseable subscript", err)
	}
	return hash, nil
}

//SignatureHash返回输入idx使用给定子脚本和哈希类型时的签名哈希。
func (b *TxBuilder) SignatureHash(idx int, subscript Script,
	hashType txscript.SigHashType) ([]byte, error) {

	return signatureHash(b.unsignedMsgTx(), idx, subscript, hashType)
}

//SignatureHash返回已构建交易中输入idx的签名哈希。其他输入的
//签名脚本不影响结果。
func (t *Tx) SignatureHash(idx int, subscript Script,
	hashType txscript.SigHashType) ([]byte, error) {

	return signatureHash(t.msgTx, idx, subscript, hashType)
}
