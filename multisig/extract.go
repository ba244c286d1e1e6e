//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcmultisig/txrules"
)

//NewTxBuilderFromTx从已构建（可能只部分签名）的交易重建签名
//状态，使另一个签名方可以继续签名。prevScripts为nil，或者为每个
//输入提供一个先前锁定脚本（可以为空）。
//
//P2SH多重签名、裸多重签名和P2PKH解锁脚本会被解析，其中每个签名
//都重新计算签名哈希并通过试验验证放回对应的公钥位置。OP_0占位
//符被跳过。不能验证的签名返回ErrKeyMismatch，无法识别的解锁脚本
//返回ErrUnrecognizedScriptTemplate。
func NewTxBuilderFromTx(tx *Tx, prevScripts []Script) (*TxBuilder, error) {
	msgTx := tx.msgTx
	if prevScripts != nil && len(prevScripts) != len(msgTx.TxIn) {
		str := fmt.Sprintf("got %d previous scripts for %d inputs",
			len(prevScripts), len(msgTx.TxIn))
		return nil, newError(ErrInputIndex, str, nil)
	}
	if err := txrules.CheckOutputs(msgTx.TxOut); err != nil {
		return nil, newError(ErrValueOutOfRange, "transaction output rejected", err)
	}

	b := &TxBuilder{version: msgTx.Version, lockTime: msgTx.LockTime}
	seen := make(map[wire.OutPoint]int, len(msgTx.TxIn))
	for i, txIn := range msgTx.TxIn {
		if j, ok := seen[txIn.PreviousOutPoint]; ok {
			str := fmt.Sprintf("inputs %d and %d spend the same outpoint %v",
				j, i, txIn.PreviousOutPoint)
			return nil, newError(ErrDuplicateInput, str, nil)
		}
		seen[txIn.PreviousOutPoint] = i

		in := &txInput{outPoint: txIn.PreviousOutPoint, sequence: txIn.Sequence}
		if prevScripts != nil {
			in.prevScript = Script{b: copyBytes(prevScripts[i].b)}
		}
		b.inputs = append(b.inputs, in)
	}
	for _, txOut := range msgTx.TxOut {
		b.outputs = append(b.outputs, wire.NewTxOut(txOut.Value, copyBytes(txOut.PkScript)))
	}

	for i, txIn := range msgTx.TxIn {
		if len(txIn.SignatureScript) == 0 {
			continue
		}
		acc, err := importInput(msgTx, i, b.inputs[i].prevScript, txIn.SignatureScript)
		if err != nil {
			return nil, err
		}
		b.inputs[i].sigs = acc
		log.Tracef("Imported input %d: %v", i, acc.state())
	}
	return b, nil
}

//importInput识别解锁脚本的形式并重建它的签名累加器。
func importInput(msgTx *wire.MsgTx, idx int, prevScript Script, sigScript []byte) (*inputSigs, error) {
	if !txscript.IsPushOnlyScript(sigScript) {
		str := fmt.Sprintf("signature script of input %d is not push only", idx)
		return nil, newError(ErrUnrecognizedScriptTemplate, str, nil)
	}
	pushes, err := txscript.PushedData(sigScript)
	if err != nil {
		str := fmt.Sprintf("unparseable signature script for input %d", idx)
		return nil, newError(ErrDecode, str, err)
	}

	prev := NonStandard
	if !prevScript.IsEmpty() {
		prev = Classify(prevScript)
	}

	acc := &inputSigs{sigs: make(map[int]rawSig)}
	var sigs [][]byte
	switch {
	case len(pushes) >= 2 && len(pushes[0]) == 0 && (prevScript.IsEmpty() || prev == ScriptHash):
		redeem, err := ParseRedeemScript(Script{b: pushes[len(pushes)-1]})
		if err != nil {
			str := fmt.Sprintf("input %d does not carry a multisig redeem script", idx)
			return nil, newError(ErrUnrecognizedScriptTemplate, str, err)
		}
		if !prevScript.IsEmpty() && !redeem.ScriptHashOutput().Equal(prevScript) {
			str := fmt.Sprintf("redeem script of input %d does not hash to the "+
				"previous script", idx)
			return nil, newError(ErrScriptMismatch, str, nil)
		}
		acc.template = ScriptHash
		acc.redeem = redeem
		acc.subscript = redeem.script
		sigs = pushes[1 : len(pushes)-1]

	case prev == MultiSig && len(pushes) >= 1 && len(pushes[0]) == 0:
		redeem, err := ParseRedeemScript(prevScript)
		if err != nil {
			return nil, err
		}
		acc.template = MultiSig
		acc.redeem = redeem
		acc.subscript = prevScript
		sigs = pushes[1:]

	case len(pushes) == 2 && (prevScript.IsEmpty() || prev == PubKeyHash):
		pubKey, err := ParsePublicKey(pushes[1])
		if err != nil {
			str := fmt.Sprintf("input %d does not carry a public key", idx)
			return nil, newError(ErrUnrecognizedScriptTemplate, str, err)
		}
		subscript, err := PubKeyHashOutput(pubKey.Hash160())
		if err != nil {
			return nil, err
		}
		if !prevScript.IsEmpty() && !subscript.Equal(prevScript) {
			str := fmt.Sprintf("public key of input %d does not hash to the "+
				"previous script", idx)
			return nil, newError(ErrKeyMismatch, str, nil)
		}
		acc.template = PubKeyHash
		acc.pubKey = pubKey
		acc.subscript = subscript
		sigs = pushes[:1]

	default:
		str := fmt.Sprintf("unrecognized signature script for input %d", idx)
		return nil, newError(ErrUnrecognizedScriptTemplate, str, nil)
	}

	if len(sigs) > len(acc.keys()) {
		str := fmt.Sprintf("input %d has %d signature slots for %d keys", idx,
			len(sigs), len(acc.keys()))
		return nil, newError(ErrUnrecognizedScriptTemplate, str, nil)
	}
	for _, raw := range sigs {
		if len(raw) == 0 {
			continue
		}
		if err := addRaw(acc, msgTx, idx, raw); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

//addRaw把一个带哈希类型字节的签名放到它能验证通过的公钥位置上。
func addRaw(acc *inputSigs, msgTx *wire.MsgTx, idx int, raw []byte) error {
	if len(raw) < 2 {
		str := fmt.Sprintf("signature of input %d is too short", idx)
		return newError(ErrDecode, str, nil)
	}
	hashType := txscript.SigHashType(raw[len(raw)-1])
	sig, err := ParseSignature(raw[:len(raw)-1])
	if err != nil {
		return err
	}
	hash, err := signatureHash(msgTx, idx, acc.subscript, hashType)
	if err != nil {
		return err
	}
	pos := acc.match(sig, hash)
	if pos < 0 {
		str := fmt.Sprintf("signature of input %d matches no public key", idx)
		return newError(ErrKeyMismatch, str, nil)
	}
	acc.sigs[pos] = rawSig(copyBytes(raw))
	return nil
}
