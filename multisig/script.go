//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcutil"
)

//MaxMultiSigKeys是标准多重签名模板允许的最大公钥数。
const MaxMultiSigKeys = 16

//script是不可变的操作码和数据推送序列。构造函数总是
//复制输入，Bytes总是返回副本。
type Script struct {
	b []byte
}

//parsescript验证原始脚本可以被解析并且不超过网络的
//脚本大小限制。
func ParseScript(b []byte) (Script, error) {
	if len(b) > txscript.MaxScriptSize {
		str := fmt.Sprintf("script size %d exceeds maximum %d", len(b),
			txscript.MaxScriptSize)
		return Script{}, newError(ErrInvalidScriptParams, str, nil)
	}
	if _, err := txscript.DisasmString(b); err != nil {
		return Script{}, newError(ErrDecode, "unparseable script", err)
	}
	return Script{b: copyBytes(b)}, nil
}

//parsescripthex解析十六进制编码的脚本。
func ParseScriptHex(s string) (Script, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Script{}, newError(ErrDecode, "invalid script hex", err)
	}
	return ParseScript(b)
}

//bytes返回序列化脚本的副本。
func (s Script) Bytes() []byte {
	return copyBytes(s.b)
}

//len返回序列化脚本的长度。
func (s Script) Len() int {
	return len(s.b)
}

//IsEmpty报告脚本是否为空。
func (s Script) IsEmpty() bool {
	return len(s.b) == 0
}

//equal按字节比较两个脚本。
func (s Script) Equal(other Script) bool {
	return bytes.Equal(s.b, other.b)
}

//hash返回脚本的承诺哈希RIPEMD160(SHA256(script))。
func (s Script) Hash() []byte {
	return btcutil.Hash160(s.b)
}

//hex返回脚本的十六进制编码。
func (s Script) Hex() string {
	return hex.EncodeToString(s.b)
}

//template对脚本进行分类。
func (s Script) Template() Template {
	return Classify(s)
}

//字符串返回反汇编的脚本。
func (s Script) String() string {
	disasm, err := txscript.DisasmString(s.b)
	if err != nil {
		return "[error: " + err.Error() + "]"
	}
	return disasm
}

//redeemscript是m-of-n多重签名脚本以及它的阈值和
//按脚本顺序排列的公钥。
type RedeemScript struct {
	script    Script
	threshold int
	pubKeys   []PublicKey
}

//multisigoutput创建OP_m <pubkey_1> ... <pubkey_n> OP_n OP_CHECKMULTISIG。
//公钥的顺序被原样保留，因为它嵌入在脚本中，进而决定了
//派生的地址。阈值或公钥数量超出范围、或者公钥重复时
//返回ErrInvalidScriptParams。
func MultiSigOutput(threshold int, pubKeys []PublicKey) (*RedeemScript, error) {
	n := len(pubKeys)
	if n < 1 || n > MaxMultiSigKeys {
		str := fmt.Sprintf("number of public keys %d out of range [1, %d]", n,
			MaxMultiSigKeys)
		return nil, newError(ErrInvalidScriptParams, str, nil)
	}
	if threshold < 1 || threshold > n {
		str := fmt.Sprintf("threshold %d out of range [1, %d]", threshold, n)
		return nil, newError(ErrInvalidScriptParams, str, nil)
	}
	for i, pubKey := range pubKeys {
		if pubKey.key == nil {
			str := fmt.Sprintf("public key %d is empty", i)
			return nil, newError(ErrInvalidScriptParams, str, nil)
		}
	}
	if err := checkDistinct(pubKeys); err != nil {
		return nil, err
	}

	builder := txscript.NewScriptBuilder().AddInt64(int64(threshold))
	for _, pubKey := range pubKeys {
		builder.AddData(pubKey.serialized)
	}
	builder.AddInt64(int64(n)).AddOp(txscript.OP_CHECKMULTISIG)
	script, err := builder.Script()
	if err != nil {
		return nil, newError(ErrInvalidScriptParams, "cannot build multisig script", err)
	}

	keys := make([]PublicKey, n)
	copy(keys, pubKeys)
	return &RedeemScript{
		script:    Script{b: script},
		threshold: threshold,
		pubKeys:   keys,
	}, nil
}

//parseredeemscript从序列化的多重签名脚本中恢复阈值和公钥。
func ParseRedeemScript(s Script) (*RedeemScript, error) {
	threshold, pubKeys, err := parseMultiSig(s.b)
	if err != nil {
		return nil, newError(ErrUnrecognizedScriptTemplate,
			"script is not a multisig script", err)
	}
	if err := checkDistinct(pubKeys); err != nil {
		return nil, err
	}
	return &RedeemScript{
		script:    Script{b: copyBytes(s.b)},
		threshold: threshold,
		pubKeys:   pubKeys,
	}, nil
}

//checkdistinct确保没有两个公钥表示同一个曲线点。重复的
//公钥会让签名到公钥位置的匹配产生歧义。
func checkDistinct(pubKeys []PublicKey) error {
	for i := range pubKeys {
		for j := i + 1; j < len(pubKeys); j++ {
			if pubKeys[i].samePoint(pubKeys[j]) {
				str := fmt.Sprintf("public keys %d and %d are duplicates", i, j)
				return newError(ErrInvalidScriptParams, str, nil)
			}
		}
	}
	return nil
}

//Script返回序列化的赎回脚本。
func (r *RedeemScript) Script() Script {
	return r.script
}

//threshold返回所需签名数m。
func (r *RedeemScript) Threshold() int {
	return r.threshold
}

//PubKeys按脚本顺序返回公钥的副本。
func (r *RedeemScript) PubKeys() []PublicKey {
	keys := make([]PublicKey, len(r.pubKeys))
	copy(keys, r.pubKeys)
	return keys
}

//Hash返回赎回脚本的哈希承诺。
func (r *RedeemScript) Hash() []byte {
	return r.script.Hash()
}

//ScriptHashOutput返回支付给此赎回脚本的P2SH输出脚本。
func (r *RedeemScript) ScriptHashOutput() Script {
	//哈希长度总是20字节，因此不会出错。
	s, _ := ScriptHashOutput(r.Hash())
	return s
}

func (r *RedeemScript) String() string {
	return fmt.Sprintf("%d-of-%d %s", r.threshold, len(r.pubKeys), r.script)
}

//scripthashoutput创建标准的P2SH输出脚本
//OP_HASH160 <scriptHash> OP_EQUAL。
func ScriptHashOutput(scriptHash []byte) (Script, error) {
	if len(scriptHash) != hash160Size {
		str := fmt.Sprintf("script hash must be %d bytes, got %d",
			hash160Size, len(scriptHash))
		return Script{}, newError(ErrInvalidScriptParams, str, nil)
	}
	script, err := txscript.NewScriptBuilder().AddOp(txscript.OP_HASH160).
		AddData(scriptHash).AddOp(txscript.OP_EQUAL).Script()
	if err != nil {
		return Script{}, newError(ErrInvalidScriptParams, "cannot build P2SH script", err)
	}
	return Script{b: script}, nil
}

//pubkeyhashoutput创建标准的P2PKH输出脚本
//OP_DUP OP_HASH160 <pubKeyHash> OP_EQUALVERIFY OP_CHECKSIG。
func PubKeyHashOutput(pubKeyHash []byte) (Script, error) {
	if len(pubKeyHash) != hash160Size {
		str := fmt.Sprintf("public key hash must be %d bytes, got %d",
			hash160Size, len(pubKeyHash))
		return Script{}, newError(ErrInvalidScriptParams, str, nil)
	}
	script, err := txscript.NewScriptBuilder().AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).AddData(pubKeyHash).
		AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG).Script()
	if err != nil {
		return Script{}, newError(ErrInvalidScriptParams, "cannot build P2PKH script", err)
	}
	return Script{b: script}, nil
}
