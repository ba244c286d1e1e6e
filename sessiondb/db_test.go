//版权所有（c）2015-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package sessiondb_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcmultisig/multisig"
	"github.com/btcsuite/btcmultisig/netparams"
	"github.com/btcsuite/btcmultisig/sessiondb"
)

func setUp(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "sessiondb")
	if err != nil {
		t.Fatal(err)
	}
	return filepath.Join(dir, "sessions.db"), func() { os.RemoveAll(dir) }
}

type fixture struct {
	keys   []*multisig.PrivateKey
	redeem *multisig.RedeemScript
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{}
	var pubKeys []multisig.PublicKey
	for i := byte(1); i <= 3; i++ {
		scalar := make([]byte, 32)
		scalar[0], scalar[31] = 0x22, i
		k, err := multisig.PrivateKeyFromBytes(scalar, true)
		if err != nil {
			t.Fatal(err)
		}
		f.keys = append(f.keys, k)
		pubKeys = append(pubKeys, k.DefaultPubKey())
	}
	redeem, err := multisig.MultiSigOutput(2, pubKeys)
	if err != nil {
		t.Fatal(err)
	}
	f.redeem = redeem
	return f
}

func (f *fixture) builder(t *testing.T) *multisig.TxBuilder {
	b := multisig.NewTxBuilder()
	var prev chainhash.Hash
	prev[0] = 0xaa
	if _, err := b.AddInput(prev, 0); err != nil {
		t.Fatal(err)
	}
	if err := b.SetPrevOutScript(0, f.redeem.ScriptHashOutput()); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddOutput(f.redeem.ScriptHashOutput(), 50000); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestOpenMissing(t *testing.T) {
	path, tearDown := setUp(t)
	defer tearDown()

	if _, err := sessiondb.Open(path, false); err != sessiondb.ErrDbDoesNotExist {
		t.Fatalf("got %v, want ErrDbDoesNotExist", err)
	}

	//父路径是普通文件时stat失败，错误不能被当成不存在或存在。
	if err := ioutil.WriteFile(path, nil, 0600); err != nil {
		t.Fatal(err)
	}
	_, err := sessiondb.Open(filepath.Join(path, "sessions.db"), false)
	if err == nil || err == sessiondb.ErrDbDoesNotExist {
		t.Fatalf("got %v, want stat error", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	path, tearDown := setUp(t)
	defer tearDown()
	f := newFixture(t)

	db, err := sessiondb.Open(path, true)
	if err != nil {
		t.Fatal(err)
	}

	b := f.builder(t)
	if err := b.Sign(0, f.keys[2], f.redeem); err != nil {
		t.Fatal(err)
	}
	s, err := sessiondb.NewSession("payroll", &netparams.TestNet3Params, b,
		[]*multisig.RedeemScript{f.redeem})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Create(s); err != nil {
		t.Fatal(err)
	}
	if err := db.Create(s); err != sessiondb.ErrSessionExists {
		t.Errorf("second Create: got %v, want ErrSessionExists", err)
	}

	//关闭后重新打开，数据仍然存在。
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}
	db, err = sessiondb.Open(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	got, err := db.Fetch("payroll")
	if err != nil {
		t.Fatal(err)
	}
	if got.Net != &netparams.TestNet3Params {
		t.Errorf("network %s", got.Net.Name)
	}
	if got.Created.Unix() != s.Created.Unix() {
		t.Errorf("created %v, want %v", got.Created, s.Created)
	}
	if !reflect.DeepEqual(got.Tx.Bytes(), s.Tx.Bytes()) {
		t.Errorf("transaction changed in storage")
	}
	if len(got.PrevScripts) != 1 || !got.PrevScripts[0].Equal(f.redeem.ScriptHashOutput()) {
		t.Errorf("previous scripts %v", got.PrevScripts)
	}
	if len(got.RedeemScripts) != 1 || got.RedeemScripts[0] == nil ||
		!got.RedeemScripts[0].Script().Equal(f.redeem.Script()) {
		t.Fatalf("redeem scripts %v", got.RedeemScripts)
	}

	resumed, err := got.Builder()
	if err != nil {
		t.Fatal(err)
	}
	state, err := resumed.InputState(0)
	if err != nil {
		t.Fatal(err)
	}
	if state.Status != multisig.PartiallySigned || state.Have != 1 {
		t.Fatalf("resumed state %v", state)
	}
	if err := resumed.Sign(0, f.keys[0], got.RedeemScripts[0]); err != nil {
		t.Fatal(err)
	}
	if err := got.SetBuilder(resumed); err != nil {
		t.Fatal(err)
	}
	if err := db.Update(got); err != nil {
		t.Fatal(err)
	}

	final, err := db.Fetch("payroll")
	if err != nil {
		t.Fatal(err)
	}
	fb, err := final.Builder()
	if err != nil {
		t.Fatal(err)
	}
	tx, err := fb.Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := multisig.VerifyInput(tx, 0, final.PrevScripts[0]); err != nil {
		t.Errorf("finalized transaction does not verify: %v", err)
	}

	names, err := db.Names()
	if err != nil || !reflect.DeepEqual(names, []string{"payroll"}) {
		t.Errorf("names %v (%v)", names, err)
	}
	if err := db.Delete("payroll"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Fetch("payroll"); err != sessiondb.ErrSessionNotFound {
		t.Errorf("Fetch after Delete: %v", err)
	}
	if err := db.Delete("payroll"); err != sessiondb.ErrSessionNotFound {
		t.Errorf("second Delete: %v", err)
	}
	if err := db.Update(got); err != sessiondb.ErrSessionNotFound {
		t.Errorf("Update of deleted session: %v", err)
	}
}

func TestSessionErrors(t *testing.T) {
	path, tearDown := setUp(t)
	defer tearDown()
	f := newFixture(t)

	db, err := sessiondb.Open(path, true)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	b := f.builder(t)
	s, err := sessiondb.NewSession("", &netparams.MainNetParams, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Create(s); err != sessiondb.ErrNameRequired {
		t.Errorf("empty name: %v", err)
	}
	if _, err := db.Fetch(""); err != sessiondb.ErrNameRequired {
		t.Errorf("empty name fetch: %v", err)
	}

	_, err = sessiondb.NewSession("x", &netparams.MainNetParams, b,
		[]*multisig.RedeemScript{f.redeem, f.redeem})
	if err == nil {
		t.Errorf("redeem script count mismatch accepted")
	}

	//没有签名的会话保存未签名的输入和空的赎回脚本槽位。
	s.Name = "unsigned"
	if err := db.Create(s); err != nil {
		t.Fatal(err)
	}
	got, err := db.Fetch("unsigned")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.RedeemScripts) != 1 || got.RedeemScripts[0] != nil {
		t.Errorf("redeem scripts %v", got.RedeemScripts)
	}
}
