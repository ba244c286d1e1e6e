//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

const hash160Size = 20

//template标识一种标准脚本模板。模板集合是封闭的，
//不匹配的脚本总是NonStandard。
type Template int

const (
	//NonStandard是任何不匹配已知模板的脚本。
	NonStandard Template = iota

	//PubKeyHash是OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG。
	PubKeyHash

	//ScriptHash是OP_HASH160 <20> OP_EQUAL。
	ScriptHash

	//MultiSig是裸的OP_m <pubkeys...> OP_n OP_CHECKMULTISIG。
	MultiSig
)

var templateStrings = map[Template]string{
	NonStandard: "nonstandard",
	PubKeyHash:  "pubkeyhash",
	ScriptHash:  "scripthash",
	MultiSig:    "multisig",
}

func (t Template) String() string {
	if s, ok := templateStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Template (%d)", int(t))
}

//classify将脚本与标准模板逐字节匹配。
func Classify(s Script) Template {
	switch {
	case isPubKeyHash(s.b):
		return PubKeyHash
	case isScriptHash(s.b):
		return ScriptHash
	}
	if _, _, err := parseMultiSig(s.b); err == nil {
		return MultiSig
	}
	return NonStandard
}

func isPubKeyHash(b []byte) bool {
	return len(b) == 25 &&
		b[0] == txscript.OP_DUP &&
		b[1] == txscript.OP_HASH160 &&
		b[2] == txscript.OP_DATA_20 &&
		b[23] == txscript.OP_EQUALVERIFY &&
		b[24] == txscript.OP_CHECKSIG
}

func isScriptHash(b []byte) bool {
	return len(b) == 23 &&
		b[0] == txscript.OP_HASH160 &&
		b[1] == txscript.OP_DATA_20 &&
		b[22] == txscript.OP_EQUAL
}

//embeddedHash返回P2PKH或P2SH脚本中的20字节哈希。
func embeddedHash(s Script, t Template) []byte {
	switch t {
	case PubKeyHash:
		return copyBytes(s.b[3:23])
	case ScriptHash:
		return copyBytes(s.b[2:22])
	}
	return nil
}

//smallInt解码OP_1到OP_16，其他操作码返回0。
func smallInt(op byte) int {
	if op >= txscript.OP_1 && op <= txscript.OP_16 {
		return int(op) - (txscript.OP_1 - 1)
	}
	return 0
}

//parsemultisig严格解析OP_m <pubkeys...> OP_n OP_CHECKMULTISIG。
//每个公钥必须使用直接推送，并且必须是有效的压缩或非压缩
//公钥。
func parseMultiSig(b []byte) (int, []PublicKey, error) {
	if len(b) < 3 || b[len(b)-1] != txscript.OP_CHECKMULTISIG {
		return 0, nil, errors.New("missing OP_CHECKMULTISIG")
	}
	m := smallInt(b[0])
	n := smallInt(b[len(b)-2])
	if m == 0 || n == 0 || m > n {
		return 0, nil, fmt.Errorf("invalid threshold %d-of-%d", m, n)
	}

	end := len(b) - 2
	pos := 1
	pubKeys := make([]PublicKey, 0, n)
	for i := 0; i < n; i++ {
		if pos >= end {
			return 0, nil, fmt.Errorf("script has %d public keys, want %d", i, n)
		}
		l := int(b[pos])
		if l != txscript.OP_DATA_33 && l != txscript.OP_DATA_65 {
			return 0, nil, fmt.Errorf("public key %d has invalid push 0x%02x", i, b[pos])
		}
		if pos+1+l > end {
			return 0, nil, fmt.Errorf("public key %d is truncated", i)
		}
		pubKey, err := ParsePublicKey(b[pos+1 : pos+1+l])
		if err != nil {
			return 0, nil, err
		}
		pubKeys = append(pubKeys, pubKey)
		pos += 1 + l
	}
	if pos != end {
		return 0, nil, errors.New("unexpected data after public keys")
	}
	return m, pubKeys, nil
}
