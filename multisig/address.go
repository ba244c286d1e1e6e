//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcutil/base58"
)

//address是由脚本哈希承诺派生的、带网络标记和校验和的
//base58字符串。它只用于展示，内部从不用作键。
type Address struct {
	addr     btcutil.Address
	template Template
	net      *chaincfg.Params
}

//AddressFromOutputScript将输出脚本与P2SH和P2PKH模板匹配，
//并把其中的哈希编码为给定网络的地址。net为nil时使用主网。
//其他脚本（包括裸多重签名）返回ErrUnrecognizedScriptTemplate。
func AddressFromOutputScript(s Script, net *chaincfg.Params) (Address, error) {
	t := Classify(s)
	switch t {
	case PubKeyHash, ScriptHash:
		return newAddress(t, embeddedHash(s, t), net)
	}
	str := fmt.Sprintf("%s script has no address form", t)
	return Address{}, newError(ErrUnrecognizedScriptTemplate, str, nil)
}

//decodeaddress解码base58地址。校验和、长度或版本字节与给定
//网络不符时返回ErrDecode。net为nil时使用主网。
func DecodeAddress(s string, net *chaincfg.Params) (Address, error) {
	if net == nil {
		net = &chaincfg.MainNetParams
	}
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, newError(ErrDecode, "invalid base58check address", err)
	}
	if len(payload) != hash160Size {
		str := fmt.Sprintf("address payload is %d bytes, want %d", len(payload),
			hash160Size)
		return Address{}, newError(ErrDecode, str, nil)
	}
	switch version {
	case net.PubKeyHashAddrID:
		return newAddress(PubKeyHash, payload, net)
	case net.ScriptHashAddrID:
		return newAddress(ScriptHash, payload, net)
	}
	str := fmt.Sprintf("address version 0x%02x is not valid for network %s",
		version, net.Name)
	return Address{}, newError(ErrDecode, str, nil)
}

func newAddress(t Template, hash []byte, net *chaincfg.Params) (Address, error) {
	if net == nil {
		net = &chaincfg.MainNetParams
	}
	var (
		addr btcutil.Address
		err  error
	)
	switch t {
	case PubKeyHash:
		addr, err = btcutil.NewAddressPubKeyHash(hash, net)
	case ScriptHash:
		addr, err = btcutil.NewAddressScriptHashFromHash(hash, net)
	default:
		str := fmt.Sprintf("%s script has no address form", t)
		return Address{}, newError(ErrUnrecognizedScriptTemplate, str, nil)
	}
	if err != nil {
		return Address{}, newError(ErrDecode, "invalid address hash", err)
	}
	return Address{addr: addr, template: t, net: net}, nil
}

//字符串返回base58check编码的地址。
func (a Address) String() string {
	if a.addr == nil {
		return ""
	}
	return a.addr.EncodeAddress()
}

//hash返回地址承诺的20字节哈希。
func (a Address) Hash() []byte {
	return copyBytes(a.addr.ScriptAddress())
}

//template返回地址所代表的输出模板。
func (a Address) Template() Template {
	return a.template
}

//net返回地址所属的网络参数。
func (a Address) Net() *chaincfg.Params {
	return a.net
}

//OutputScript返回支付给该地址的输出脚本。
func (a Address) OutputScript() (Script, error) {
	switch a.template {
	case PubKeyHash:
		return PubKeyHashOutput(a.addr.ScriptAddress())
	case ScriptHash:
		return ScriptHashOutput(a.addr.ScriptAddress())
	}
	return Script{}, newError(ErrUnrecognizedScriptTemplate, "empty address", nil)
}
