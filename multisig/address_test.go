//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"bytes"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/base58"
)

func TestGoldenP2SHAddress(t *testing.T) {
	redeem, err := MultiSigOutput(2, TstPubKeys(t, goldenPubKeys...))
	if err != nil {
		t.Fatal(err)
	}
	addr, err := AddressFromOutputScript(redeem.ScriptHashOutput(), &chaincfg.MainNetParams)
	if err != nil {
		t.Fatal(err)
	}
	const want = "36NUkt6FWUi3LAWBqWRdDmdTWbt91Yvfu7"
	if addr.String() != want {
		t.Fatalf("address %s, want %s", addr, want)
	}

	decoded, err := DecodeAddress(want, nil)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Template() != ScriptHash || decoded.Net() != &chaincfg.MainNetParams {
		t.Errorf("decoded %v on %s", decoded.Template(), decoded.Net().Name)
	}
	if !bytes.Equal(decoded.Hash(), redeem.Hash()) {
		t.Errorf("decoded hash %x, want %x", decoded.Hash(), redeem.Hash())
	}
	script, err := decoded.OutputScript()
	if err != nil {
		t.Fatal(err)
	}
	if !script.Equal(redeem.ScriptHashOutput()) {
		t.Errorf("output script %v, want %v", script, redeem.ScriptHashOutput())
	}
}

func TestAddressNetworks(t *testing.T) {
	k, err := DecodePrivateKey(testnetWIF1, &chaincfg.TestNet3Params)
	if err != nil {
		t.Fatal(err)
	}
	pkh, err := PubKeyHashOutput(k.DefaultPubKey().Hash160())
	if err != nil {
		t.Fatal(err)
	}
	redeem, err := MultiSigOutput(1, []PublicKey{k.DefaultPubKey()})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		script  Script
		net     *chaincfg.Params
		prefix  string
		foreign *chaincfg.Params
	}{
		{"testnet p2pkh", pkh, &chaincfg.TestNet3Params, "mn", &chaincfg.MainNetParams},
		{"testnet p2sh", redeem.ScriptHashOutput(), &chaincfg.TestNet3Params, "2", &chaincfg.MainNetParams},
		{"mainnet p2pkh", pkh, &chaincfg.MainNetParams, "1", &chaincfg.TestNet3Params},
		{"mainnet p2sh", redeem.ScriptHashOutput(), nil, "3", &chaincfg.TestNet3Params},
	}
	for _, test := range tests {
		addr, err := AddressFromOutputScript(test.script, test.net)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		s := addr.String()
		if !strings.ContainsAny(s[:1], test.prefix) {
			t.Errorf("%s: address %s does not start with one of %q", test.name, s, test.prefix)
		}

		decoded, err := DecodeAddress(s, addr.Net())
		if err != nil {
			t.Errorf("%s: decode: %v", test.name, err)
			continue
		}
		if decoded.String() != s || decoded.Template() != Classify(test.script) {
			t.Errorf("%s: round trip got %s (%v)", test.name, decoded, decoded.Template())
		}
		out, err := decoded.OutputScript()
		if err != nil || !out.Equal(test.script) {
			t.Errorf("%s: output script %v (%v), want %v", test.name, out, err, test.script)
		}

		_, err = DecodeAddress(s, test.foreign)
		TstCheckError(t, test.name+" on foreign network", err, ErrDecode)
	}
}

func TestDecodeAddressErrors(t *testing.T) {
	const golden = "36NUkt6FWUi3LAWBqWRdDmdTWbt91Yvfu7"
	tests := []struct {
		name string
		addr string
	}{
		{"bad checksum", golden[:len(golden)-1] + "8"},
		{"empty", ""},
		{"invalid characters", "0OIl0OIl"},
		{"21 byte payload", base58.CheckEncode(make([]byte, 21), chaincfg.MainNetParams.ScriptHashAddrID)},
		{"unknown version", base58.CheckEncode(make([]byte, 20), 0x42)},
	}
	for _, test := range tests {
		_, err := DecodeAddress(test.addr, &chaincfg.MainNetParams)
		TstCheckError(t, test.name, err, ErrDecode)
	}
}

func TestAddressFromOutputScriptRejects(t *testing.T) {
	redeem, err := MultiSigOutput(2, TstPubKeys(t, goldenPubKeys...))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		script Script
	}{
		{"bare multisig", redeem.Script()},
		{"empty", Script{}},
		{"op_return", Script{b: []byte{0x6a}}},
	}
	for _, test := range tests {
		_, err := AddressFromOutputScript(test.script, &chaincfg.MainNetParams)
		TstCheckError(t, test.name, err, ErrUnrecognizedScriptTemplate)
	}
}
