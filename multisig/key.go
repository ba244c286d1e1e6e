//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcmultisig/internal/zero"
	"github.com/btcsuite/btcutil"
)

var (
	curveOrder = btcec.S256().N
	halfOrder  = new(big.Int).Rsh(btcec.S256().N, 1)
)

//privatekey是secp256k1私钥以及导入时记录的
//公钥压缩偏好。私钥只属于持有它的签名方。
type PrivateKey struct {
	key        *btcec.PrivateKey
	compressed bool
}

//generateprivatekey使用系统熵源生成新的私钥。
//只有熵源出错时才会失败。
func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key: key, compressed: true}, nil
}

//privatekeyfrombytes从32字节的大端标量创建私钥。
func PrivateKeyFromBytes(scalar []byte, compressed bool) (*PrivateKey, error) {
	if len(scalar) != btcec.PrivKeyBytesLen {
		str := fmt.Sprintf("private key must be %d bytes, got %d",
			btcec.PrivKeyBytesLen, len(scalar))
		return nil, newError(ErrDecode, str, nil)
	}
	key, _ := btcec.PrivKeyFromBytes(btcec.S256(), scalar)
	if !validScalar(key.D) {
		return nil, newError(ErrDecode, "private key scalar out of range", nil)
	}
	return &PrivateKey{key: key, compressed: compressed}, nil
}

//decodeprivatekey解码WIF格式的私钥。如果net不为nil，
//则WIF的网络前缀必须与之匹配。
func DecodePrivateKey(wif string, net *chaincfg.Params) (*PrivateKey, error) {
	w, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, newError(ErrDecode, "invalid WIF private key", err)
	}
	if net != nil && !w.IsForNet(net) {
		str := fmt.Sprintf("WIF private key is not for network %s", net.Name)
		return nil, newError(ErrDecode, str, nil)
	}
	if !validScalar(w.PrivKey.D) {
		return nil, newError(ErrDecode, "private key scalar out of range", nil)
	}
	return &PrivateKey{key: w.PrivKey, compressed: w.CompressPubKey}, nil
}

func validScalar(d *big.Int) bool {
	return d.Sign() > 0 && d.Cmp(curveOrder) < 0
}

//encodewif以给定网络的WIF格式返回私钥。
func (k *PrivateKey) EncodeWIF(net *chaincfg.Params) (string, error) {
	w, err := btcutil.NewWIF(k.key, net, k.compressed)
	if err != nil {
		return "", newError(ErrDecode, "cannot encode WIF private key", err)
	}
	return w.String(), nil
}

//Compressed返回解码时记录的公钥压缩偏好。
func (k *PrivateKey) Compressed() bool {
	return k.compressed
}

//PubKey派生公钥。相同的私钥和压缩标志总是产生
//相同的字节。
func (k *PrivateKey) PubKey(compressed bool) PublicKey {
	pub := k.key.PubKey()
	if compressed {
		return PublicKey{key: pub, serialized: pub.SerializeCompressed()}
	}
	return PublicKey{key: pub, serialized: pub.SerializeUncompressed()}
}

//DefaultPubKey使用私钥自己的压缩偏好派生公钥。
func (k *PrivateKey) DefaultPubKey() PublicKey {
	return k.PubKey(k.compressed)
}

//sign对32字节的消息哈希进行签名。签名按照RFC6979确定性
//生成，并以规范的low-S严格DER格式编码。
func (k *PrivateKey) Sign(hash []byte) (Signature, error) {
	if len(hash) != 32 {
		str := fmt.Sprintf("message hash must be 32 bytes, got %d", len(hash))
		return nil, newError(ErrInvalidHash, str, nil)
	}
	sig, err := k.key.Sign(hash)
	if err != nil {
		return nil, newError(ErrRawSigning, "failed to sign hash", err)
	}
	return Signature(sig.Serialize()), nil
}

//zero从内存中清除私钥标量。之后不能再使用该密钥。
func (k *PrivateKey) Zero() {
	zero.PrivateKey(k.key)
}

//publickey是secp256k1公钥以及其实际使用的序列化形式。
//压缩和非压缩形式对于哈希来说是不同的密钥。
type PublicKey struct {
	key        *btcec.PublicKey
	serialized []byte
}

//parsepublickey解析33字节压缩或65字节非压缩的公钥。
//混合格式被拒绝。
func ParsePublicKey(b []byte) (PublicKey, error) {
	switch {
	case len(b) == btcec.PubKeyBytesLenCompressed && (b[0] == 0x02 || b[0] == 0x03):
	case len(b) == btcec.PubKeyBytesLenUncompressed && b[0] == 0x04:
	default:
		str := fmt.Sprintf("invalid public key encoding (length %d)", len(b))
		return PublicKey{}, newError(ErrDecode, str, nil)
	}
	key, err := btcec.ParsePubKey(b, btcec.S256())
	if err != nil {
		return PublicKey{}, newError(ErrDecode, "invalid public key", err)
	}
	return PublicKey{key: key, serialized: copyBytes(b)}, nil
}

//parsepublickeyhex解析十六进制编码的公钥。
func ParsePublicKeyHex(s string) (PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, newError(ErrDecode, "invalid public key hex", err)
	}
	return ParsePublicKey(b)
}

//bytes返回序列化公钥的副本。
func (p PublicKey) Bytes() []byte {
	return copyBytes(p.serialized)
}

//IsCompressed返回公钥是否使用33字节压缩形式。
func (p PublicKey) IsCompressed() bool {
	return len(p.serialized) == btcec.PubKeyBytesLenCompressed
}

//Hash160返回序列化公钥的RIPEMD160(SHA256)。
func (p PublicKey) Hash160() []byte {
	return btcutil.Hash160(p.serialized)
}

//equal按序列化字节比较两个公钥。
func (p PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(p.serialized, other.serialized)
}

//samePoint报告两个公钥是否为同一曲线点，而不管它们的
//序列化形式。
func (p PublicKey) samePoint(other PublicKey) bool {
	return p.key.X.Cmp(other.key.X) == 0 && p.key.Y.Cmp(other.key.Y) == 0
}

func (p PublicKey) String() string {
	return hex.EncodeToString(p.serialized)
}

//signature是不带哈希类型字节的严格DER编码ECDSA签名。
type Signature []byte

//parsesignature以严格DER规则解析签名，并拒绝高S值。
func ParseSignature(b []byte) (Signature, error) {
	sig, err := btcec.ParseDERSignature(b, btcec.S256())
	if err != nil {
		return nil, newError(ErrDecode, "invalid DER signature", err)
	}
	if sig.S.Cmp(halfOrder) > 0 {
		return nil, newError(ErrDecode, "signature is not canonical (high S)", nil)
	}
	return Signature(copyBytes(b)), nil
}

//verify报告签名是否是公钥对给定哈希的有效签名。
func (s Signature) Verify(hash []byte, pub PublicKey) bool {
	if pub.key == nil {
		return false
	}
	sig, err := btcec.ParseDERSignature(s, btcec.S256())
	if err != nil {
		return false
	}
	return sig.Verify(hash, pub.key)
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
