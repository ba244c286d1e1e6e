//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

//SigStatus是单个输入的签名状态。
type SigStatus int

const (
	//Unsigned表示输入还没有任何签名。
	Unsigned SigStatus = iota

	//PartiallySigned表示输入有签名但少于阈值。
	PartiallySigned

	//FullySigned表示输入的签名已达到阈值。
	FullySigned
)

var sigStatusStrings = map[SigStatus]string{
	Unsigned:        "unsigned",
	PartiallySigned: "partially signed",
	FullySigned:     "fully signed",
}

func (s SigStatus) String() string {
	if str, ok := sigStatusStrings[s]; ok {
		return str
	}
	return fmt.Sprintf("Unknown SigStatus (%d)", int(s))
}

//SigState描述一个输入有多少个签名以及需要多少个。
type SigState struct {
	Status   SigStatus
	Template Template
	Have     int
	Need     int
}

func (s SigState) String() string {
	if s.Status == Unsigned {
		return s.Status.String()
	}
	return fmt.Sprintf("%s (%d of %d, %s)", s.Status, s.Have, s.Need, s.Template)
}

//rawSig是DER签名后面跟着一个哈希类型字节，也就是出现在解锁
//脚本中的形式。
type rawSig []byte

//inputSigs是一个输入的签名累加器。签名按它们对应的公钥在脚本中
//的位置保存，位置由试验验证决定，而不是由调用者声明。
type inputSigs struct {
	//template是输入的花费方式：PubKeyHash、ScriptHash（P2SH多重签名）
	//或MultiSig（裸多重签名）。
	template Template

	//redeem是ScriptHash和MultiSig输入的多重签名脚本。
	redeem *RedeemScript

	//pubKey是PubKeyHash输入的公钥。
	pubKey PublicKey

	//subscript是计算签名哈希时替换进来的脚本。
	subscript Script

	sigs map[int]rawSig
}

func (a *inputSigs) keys() []PublicKey {
	if a.template == PubKeyHash {
		return []PublicKey{a.pubKey}
	}
	return a.redeem.pubKeys
}

func (a *inputSigs) threshold() int {
	if a.template == PubKeyHash {
		return 1
	}
	return a.redeem.threshold
}

//match返回签名能够验证通过的公钥位置，没有则返回-1。脚本中的
//公钥互不相同，因此位置是唯一的。
func (a *inputSigs) match(sig Signature, hash []byte) int {
	for i, pubKey := range a.keys() {
		if sig.Verify(hash, pubKey) {
			return i
		}
	}
	return -1
}

//lockingScript返回该累加器能够解锁的先前输出脚本。
func (a *inputSigs) lockingScript() Script {
	if a.template == ScriptHash {
		return a.redeem.ScriptHashOutput()
	}
	return a.subscript
}

func (a *inputSigs) sameSpend(other *inputSigs) bool {
	return a.template == other.template && a.subscript.Equal(other.subscript) &&
		a.pubKey.Equal(other.pubKey)
}

func (a *inputSigs) copy() *inputSigs {
	c := *a
	c.sigs = make(map[int]rawSig, len(a.sigs))
	for pos, sig := range a.sigs {
		c.sigs[pos] = sig
	}
	return &c
}

func (a *inputSigs) state() SigState {
	have, need := len(a.sigs), a.threshold()
	status := PartiallySigned
	switch {
	case have == 0:
		status = Unsigned
	case have >= need:
		status = FullySigned
	}
	return SigState{Status: status, Template: a.template, Have: have, Need: need}
}

//sigScript组装解锁脚本。多重签名输入为OP_0 <sig...> [<redeem>]，
//签名按对应公钥在脚本中的升序排列，只取前m个。placeholders为真时
//每个公钥位置输出一个槽位，缺失的签名用OP_0占位，以便之后的
//签名方重新导入。
func (a *inputSigs) sigScript(placeholders bool) ([]byte, error) {
	builder := txscript.NewScriptBuilder()
	switch a.template {
	case PubKeyHash:
		builder.AddData(a.sigs[0]).AddData(a.pubKey.serialized)

	case ScriptHash, MultiSig:
		//OP_CHECKMULTISIG会多弹出一个栈元素，因此以OP_0开头。
		builder.AddOp(txscript.OP_0)
		added := 0
		for pos := range a.redeem.pubKeys {
			sig, ok := a.sigs[pos]
			switch {
			case ok && (placeholders || added < a.redeem.threshold):
				builder.AddData(sig)
				added++
			case placeholders:
				builder.AddOp(txscript.OP_0)
			}
		}
		if a.template == ScriptHash {
			builder.AddData(a.redeem.script.b)
		}
	}
	return builder.Script()
}

//Sign使用SIGHASH_ALL为输入idx签名。
func (b *TxBuilder) Sign(idx int, priv *PrivateKey, redeem *RedeemScript) error {
	return b.SignWithHashType(idx, priv, redeem, txscript.SigHashAll)
}

//SignWithHashType为输入idx签名并把签名加入该输入的累加器。
//
//redeem不为nil时，该输入作为P2SH多重签名输入花费：如果记录了先前
//脚本，赎回脚本的哈希必须与之匹配，同一输入上的所有签名必须使用
//同一个赎回脚本。redeem为nil时，花费方式由记录的先前脚本决定
//（P2PKH或裸多重签名）；没有记录先前脚本时，按签名者自己公钥的
//P2PKH处理。
//
//签名被放在它能验证通过的公钥位置上；没有匹配的公钥时返回
//ErrKeyMismatch，不会累积任何东西。用同一个私钥重复签名会覆盖
//之前的签名。
func (b *TxBuilder) SignWithHashType(idx int, priv *PrivateKey, redeem *RedeemScript,
	hashType txscript.SigHashType) error {

	in, err := b.input(idx)
	if err != nil {
		return err
	}
	acc, err := prepareInput(idx, in, priv, redeem)
	if err != nil {
		return err
	}

	hash, err := b.SignatureHash(idx, acc.subscript, hashType)
	if err != nil {
		return err
	}
	sig, err := priv.Sign(hash)
	if err != nil {
		return err
	}
	pos := acc.match(sig, hash)
	if pos < 0 {
		str := fmt.Sprintf("private key does not match any public key of "+
			"input %d", idx)
		return newError(ErrKeyMismatch, str, nil)
	}

	raw := make(rawSig, 0, len(sig)+1)
	raw = append(raw, sig...)
	raw = append(raw, byte(hashType))
	acc.sigs[pos] = raw
	in.sigs = acc

	log.Debugf("Signed input %d with key %d (%v)", idx, pos, newLogClosure(func() string {
		return acc.state().String()
	}))
	return nil
}

//prepareInput返回输入的签名累加器。已有累加器时检查本次签名
//使用同一种花费方式，否则根据赎回脚本或先前脚本新建一个。新建的
//累加器在签名成功之前不会挂到输入上。
func prepareInput(idx int, in *txInput, priv *PrivateKey, redeem *RedeemScript) (*inputSigs, error) {
	if in.sigs != nil {
		if redeem != nil && (in.sigs.template != ScriptHash ||
			!in.sigs.redeem.script.Equal(redeem.script)) {

			str := fmt.Sprintf("input %d is already signed against a "+
				"different script", idx)
			return nil, newError(ErrScriptMismatch, str, nil)
		}
		return in.sigs, nil
	}

	acc := &inputSigs{sigs: make(map[int]rawSig)}
	if redeem != nil {
		if redeem.script.Len() > txscript.MaxScriptElementSize {
			str := fmt.Sprintf("redeem script size %d exceeds maximum push "+
				"size %d", redeem.script.Len(), txscript.MaxScriptElementSize)
			return nil, newError(ErrInvalidScriptParams, str, nil)
		}
		if !in.prevScript.IsEmpty() {
			prev := Classify(in.prevScript)
			if prev != ScriptHash || !redeem.ScriptHashOutput().Equal(in.prevScript) {
				str := fmt.Sprintf("redeem script does not hash to the "+
					"previous %s script of input %d", prev, idx)
				return nil, newError(ErrScriptMismatch, str, nil)
			}
		}
		acc.template = ScriptHash
		acc.redeem = redeem
		acc.subscript = redeem.script
		return acc, nil
	}

	if in.prevScript.IsEmpty() {
		pubKey := priv.DefaultPubKey()
		subscript, err := PubKeyHashOutput(pubKey.Hash160())
		if err != nil {
			return nil, err
		}
		acc.template = PubKeyHash
		acc.pubKey = pubKey
		acc.subscript = subscript
		return acc, nil
	}

	switch t := Classify(in.prevScript); t {
	case PubKeyHash:
		//先前脚本只承诺公钥哈希，哈希决定了使用哪种序列化形式。
		want := embeddedHash(in.prevScript, PubKeyHash)
		for _, compressed := range []bool{true, false} {
			pubKey := priv.PubKey(compressed)
			if bytes.Equal(pubKey.Hash160(), want) {
				acc.template = PubKeyHash
				acc.pubKey = pubKey
				acc.subscript = in.prevScript
				return acc, nil
			}
		}
		str := fmt.Sprintf("private key does not match the previous "+
			"pubkeyhash script of input %d", idx)
		return nil, newError(ErrKeyMismatch, str, nil)

	case MultiSig:
		redeem, err := ParseRedeemScript(in.prevScript)
		if err != nil {
			return nil, err
		}
		acc.template = MultiSig
		acc.redeem = redeem
		acc.subscript = in.prevScript
		return acc, nil

	case ScriptHash:
		str := fmt.Sprintf("input %d spends a P2SH output and needs a "+
			"redeem script", idx)
		return nil, newError(ErrInvalidScriptParams, str, nil)

	default:
		str := fmt.Sprintf("cannot sign input %d: previous script is %s", idx, t)
		return nil, newError(ErrUnrecognizedScriptTemplate, str, nil)
	}
}

//InputState返回输入idx的签名状态。
func (b *TxBuilder) InputState(idx int) (SigState, error) {
	in, err := b.input(idx)
	if err != nil {
		return SigState{}, err
	}
	if in.sigs == nil {
		return SigState{Status: Unsigned, Template: Classify(in.prevScript)}, nil
	}
	return in.sigs.state(), nil
}

//Complete报告是否每个输入都已达到其阈值。
func (b *TxBuilder) Complete() bool {
	if len(b.inputs) == 0 {
		return false
	}
	for _, in := range b.inputs {
		if in.sigs == nil || in.sigs.state().Status != FullySigned {
			return false
		}
	}
	return true
}

//Build组装每个输入的解锁脚本并返回不可变的已构建交易。任何输入的
//有效签名少于阈值时返回ErrInsufficientSignatures。Build不修改
//累积的状态，因此可以在收集完签名之前试探性调用。
func (b *TxBuilder) Build() (*Tx, error) {
	return b.build(false)
}

//BuildIncomplete与Build相同，但允许签名不足的输入：这些输入的每个
//公钥位置都有一个槽位，缺失的签名用OP_0占位，从未签名的输入保持
//空脚本。结果不能被网络接受，只用于在签名方之间传递部分签名状态，
//可以用NewTxBuilderFromTx重新导入。
func (b *TxBuilder) BuildIncomplete() (*Tx, error) {
	return b.build(true)
}

func (b *TxBuilder) build(allowIncomplete bool) (*Tx, error) {
	msgTx := b.unsignedMsgTx()
	for i, in := range b.inputs {
		if in.sigs == nil {
			if allowIncomplete {
				continue
			}
			str := fmt.Sprintf("input %d has no signatures", i)
			return nil, newError(ErrInsufficientSignatures, str, nil)
		}
		state := in.sigs.state()
		incomplete := state.Status != FullySigned
		if incomplete && !allowIncomplete {
			str := fmt.Sprintf("input %d has %d of %d required signatures", i,
				state.Have, state.Need)
			return nil, newError(ErrInsufficientSignatures, str, nil)
		}
		sigScript, err := in.sigs.sigScript(incomplete)
		if err != nil {
			str := fmt.Sprintf("cannot build signature script for input %d", i)
			return nil, newError(ErrInvalidScriptParams, str, err)
		}
		msgTx.TxIn[i].SignatureScript = sigScript
	}
	return newTx(msgTx)
}

//Merge把other中累积的签名并入b。两者必须描述同一笔未签名交易，
//同一输入必须使用同一种花费方式，合并后的签名还必须能解锁合并后
//记录的先前脚本，否则返回错误且b不变。
func (b *TxBuilder) Merge(other *TxBuilder) error {
	if b.UnsignedTxHash() != other.UnsignedTxHash() {
		return newError(ErrTxMismatch, "cannot merge signatures of different "+
			"transactions", nil)
	}
	for i, theirs := range other.inputs {
		mine := b.inputs[i]
		if mine.sigs != nil && theirs.sigs != nil && !mine.sigs.sameSpend(theirs.sigs) {
			str := fmt.Sprintf("input %d is signed against different scripts", i)
			return newError(ErrScriptMismatch, str, nil)
		}

		//合并后记录的先前脚本必须能被合并后的签名解锁。
		prevScript := mine.prevScript
		if prevScript.IsEmpty() {
			prevScript = theirs.prevScript
		}
		acc := mine.sigs
		if acc == nil {
			acc = theirs.sigs
		}
		if acc != nil && !prevScript.IsEmpty() && !acc.lockingScript().Equal(prevScript) {
			str := fmt.Sprintf("input %d is signed for a script other than its "+
				"previous script", i)
			return newError(ErrScriptMismatch, str, nil)
		}
	}

	for i, theirs := range other.inputs {
		mine := b.inputs[i]
		if mine.prevScript.IsEmpty() {
			mine.prevScript = theirs.prevScript
		}
		if theirs.sigs == nil {
			continue
		}
		if mine.sigs == nil {
			mine.sigs = theirs.sigs.copy()
			continue
		}
		for pos, sig := range theirs.sigs.sigs {
			mine.sigs.sigs[pos] = sig
		}
	}
	return nil
}

//VerifyInput用脚本引擎和标准验证标志执行已构建交易中输入idx的
//解锁脚本和先前的锁定脚本。
func VerifyInput(tx *Tx, idx int, prevScript Script) error {
	if idx < 0 || idx >= tx.NumInputs() {
		str := fmt.Sprintf("input index %d out of range [0, %d)", idx, tx.NumInputs())
		return newError(ErrInputIndex, str, nil)
	}
	vm, err := txscript.NewEngine(prevScript.b, tx.msgTx, idx,
		txscript.StandardVerifyFlags, nil, nil, 0)
	if err != nil {
		return newError(ErrScriptVerify, "cannot create script engine", err)
	}
	if err := vm.Execute(); err != nil {
		str := fmt.Sprintf("input %d failed script validation", idx)
		return newError(ErrScriptVerify, str, err)
	}
	return nil
}
