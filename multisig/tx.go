//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcmultisig/txrules"
)

//DefaultSequence是新输入的默认序列号。
const DefaultSequence = wire.MaxTxInSequenceNum

//txInput是构建中交易的一个输入：它引用的先前输出、序列号、
//账本查询服务报告的先前锁定脚本（可能为空），以及它累积的
//签名。
type txInput struct {
	outPoint   wire.OutPoint
	sequence   uint32
	prevScript Script
	sigs       *inputSigs
}

//TxBuilder是交易的可变形式。输入和输出按添加顺序保存，
//签名按输入累积。一旦任何输入有了签名，交易本身就不能再
//修改，因为那会改变已有签名承诺的哈希。
//
//TxBuilder不是并发安全的，调用者必须串行化对同一实例的访问。
type TxBuilder struct {
	version  int32
	lockTime uint32
	inputs   []*txInput
	outputs  []*wire.TxOut
}

//NewTxBuilder返回一个空的版本1交易。
func NewTxBuilder() *TxBuilder {
	return &TxBuilder{version: wire.TxVersion}
}

//frozen报告是否已有任何签名。
func (b *TxBuilder) frozen() bool {
	for _, in := range b.inputs {
		if in.sigs != nil && len(in.sigs.sigs) > 0 {
			return true
		}
	}
	return false
}

func (b *TxBuilder) checkMutable(what string) error {
	if b.frozen() {
		str := fmt.Sprintf("cannot %s: transaction already carries signatures", what)
		return newError(ErrTxFrozen, str, nil)
	}
	return nil
}

//SetVersion设置交易版本。
func (b *TxBuilder) SetVersion(version int32) error {
	if err := b.checkMutable("change version"); err != nil {
		return err
	}
	b.version = version
	return nil
}

//SetLockTime设置交易锁定时间。
func (b *TxBuilder) SetLockTime(lockTime uint32) error {
	if err := b.checkMutable("change lock time"); err != nil {
		return err
	}
	b.lockTime = lockTime
	return nil
}

//AddInput追加一个引用给定先前输出的输入，使用默认序列号，
//并返回它的索引。
func (b *TxBuilder) AddInput(prevHash chainhash.Hash, index uint32) (int, error) {
	return b.AddInputWithSequence(prevHash, index, DefaultSequence)
}

//AddInputWithSequence追加一个带给定序列号的输入。同一个先前
//输出不能被引用两次。
func (b *TxBuilder) AddInputWithSequence(prevHash chainhash.Hash, index, sequence uint32) (int, error) {
	if err := b.checkMutable("add input"); err != nil {
		return 0, err
	}
	outPoint := wire.OutPoint{Hash: prevHash, Index: index}
	for i, in := range b.inputs {
		if in.outPoint == outPoint {
			str := fmt.Sprintf("outpoint %v already spent by input %d", outPoint, i)
			return 0, newError(ErrDuplicateInput, str, nil)
		}
	}
	b.inputs = append(b.inputs, &txInput{outPoint: outPoint, sequence: sequence})
	return len(b.inputs) - 1, nil
}

//SetPrevOutScript记录账本查询服务为输入idx报告的先前锁定脚本。
//签名时用它选择模板并检查P2SH赎回脚本的哈希。
func (b *TxBuilder) SetPrevOutScript(idx int, script Script) error {
	in, err := b.input(idx)
	if err != nil {
		return err
	}
	if in.sigs != nil && !in.sigs.lockingScript().Equal(script) {
		str := fmt.Sprintf("input %d is already signed for a different "+
			"previous script", idx)
		return newError(ErrScriptMismatch, str, nil)
	}
	in.prevScript = script
	return nil
}

//PrevOutScript返回为输入idx记录的先前锁定脚本，可能为空。
func (b *TxBuilder) PrevOutScript(idx int) (Script, error) {
	in, err := b.input(idx)
	if err != nil {
		return Script{}, err
	}
	return in.prevScript, nil
}

//AddOutput追加一个支付给给定脚本的输出并返回它的索引。金额为负、
//超过供应上限，或所有输出之和超过上限时返回ErrValueOutOfRange。
func (b *TxBuilder) AddOutput(script Script, value int64) (int, error) {
	if err := b.checkMutable("add output"); err != nil {
		return 0, err
	}
	out := wire.NewTxOut(value, script.Bytes())
	outputs := append(b.outputs[:len(b.outputs):len(b.outputs)], out)
	if err := txrules.CheckOutputs(outputs); err != nil {
		str := fmt.Sprintf("output %d with value %d rejected", len(b.outputs), value)
		return 0, newError(ErrValueOutOfRange, str, err)
	}
	b.outputs = outputs
	return len(b.outputs) - 1, nil
}

//AddOutputAddress追加一个支付给给定地址的输出。
func (b *TxBuilder) AddOutputAddress(addr Address, value int64) (int, error) {
	script, err := addr.OutputScript()
	if err != nil {
		return 0, err
	}
	return b.AddOutput(script, value)
}

//NumInputs返回输入数量。
func (b *TxBuilder) NumInputs() int {
	return len(b.inputs)
}

//NumOutputs返回输出数量。
func (b *TxBuilder) NumOutputs() int {
	return len(b.outputs)
}

//Version返回交易版本。
func (b *TxBuilder) Version() int32 {
	return b.version
}

//LockTime返回交易锁定时间。
func (b *TxBuilder) LockTime() uint32 {
	return b.lockTime
}

func (b *TxBuilder) input(idx int) (*txInput, error) {
	if idx < 0 || idx >= len(b.inputs) {
		str := fmt.Sprintf("input index %d out of range [0, %d)", idx, len(b.inputs))
		return nil, newError(ErrInputIndex, str, nil)
	}
	return b.inputs[idx], nil
}

//unsignedMsgTx返回所有签名脚本都为空的交易。
func (b *TxBuilder) unsignedMsgTx() *wire.MsgTx {
	msgTx := wire.NewMsgTx(b.version)
	msgTx.LockTime = b.lockTime
	for _, in := range b.inputs {
		outPoint := in.outPoint
		txIn := wire.NewTxIn(&outPoint, nil, nil)
		txIn.Sequence = in.sequence
		msgTx.AddTxIn(txIn)
	}
	for _, out := range b.outputs {
		msgTx.AddTxOut(wire.NewTxOut(out.Value, copyBytes(out.PkScript)))
	}
	return msgTx
}

//UnsignedTxHash返回去掉所有签名脚本后的交易哈希。参与同一
//笔支出的各方用它确认它们在签同一笔交易。
func (b *TxBuilder) UnsignedTxHash() chainhash.Hash {
	return b.unsignedMsgTx().TxHash()
}

//Tx是交易的已构建不可变形式。
type Tx struct {
	msgTx *wire.MsgTx
	raw   []byte
}

func newTx(msgTx *wire.MsgTx) (*Tx, error) {
	var buf bytes.Buffer
	buf.Grow(msgTx.SerializeSizeStripped())
	if err := msgTx.SerializeNoWitness(&buf); err != nil {
		return nil, newError(ErrMalformedTransaction, "cannot serialize transaction", err)
	}
	return &Tx{msgTx: msgTx, raw: buf.Bytes()}, nil
}

//DeserializeTx解析序列化的交易。缓冲区被截断或者在交易之后
//还有多余字节时返回ErrMalformedTransaction。
func DeserializeTx(raw []byte) (*Tx, error) {
	r := bytes.NewReader(raw)
	msgTx := new(wire.MsgTx)
	if err := msgTx.DeserializeNoWitness(r); err != nil {
		str := fmt.Sprintf("cannot decode transaction: failed at offset %d "+
			"of %d bytes", len(raw)-r.Len(), len(raw))
		return nil, newError(ErrMalformedTransaction, str, err)
	}
	if r.Len() != 0 {
		str := fmt.Sprintf("%d trailing bytes after %d byte transaction",
			r.Len(), len(raw)-r.Len())
		return nil, newError(ErrMalformedTransaction, str, nil)
	}
	return &Tx{msgTx: msgTx, raw: copyBytes(raw)}, nil
}

//DeserializeTxHex解析十六进制编码的交易。
func DeserializeTxHex(s string) (*Tx, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, newError(ErrMalformedTransaction, "invalid transaction hex", err)
	}
	return DeserializeTx(raw)
}

//Bytes返回序列化交易的副本。
func (t *Tx) Bytes() []byte {
	return copyBytes(t.raw)
}

//Hex返回序列化交易的十六进制编码。
func (t *Tx) Hex() string {
	return hex.EncodeToString(t.raw)
}

//TxHash返回交易标识符。
func (t *Tx) TxHash() chainhash.Hash {
	return chainhash.DoubleHashH(t.raw)
}

//MsgTx返回交易的深拷贝。
func (t *Tx) MsgTx() *wire.MsgTx {
	return t.msgTx.Copy()
}

//NumInputs返回输入数量。
func (t *Tx) NumInputs() int {
	return len(t.msgTx.TxIn)
}

//NumOutputs返回输出数量。
func (t *Tx) NumOutputs() int {
	return len(t.msgTx.TxOut)
}

//SignatureScript返回输入idx的解锁脚本。
func (t *Tx) SignatureScript(idx int) (Script, error) {
	if idx < 0 || idx >= len(t.msgTx.TxIn) {
		str := fmt.Sprintf("input index %d out of range [0, %d)", idx,
			len(t.msgTx.TxIn))
		return Script{}, newError(ErrInputIndex, str, nil)
	}
	return Script{b: copyBytes(t.msgTx.TxIn[idx].SignatureScript)}, nil
}
