//版权所有（c）2013-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcmultisig/internal/cfgutil"
	"github.com/btcsuite/btcmultisig/internal/helpers"
	"github.com/btcsuite/btcmultisig/internal/prompt"
	"github.com/btcsuite/btcmultisig/multisig"
	"github.com/btcsuite/btcmultisig/sessiondb"
)

//parseRedeem从十六进制赎回脚本，或者从阈值和公钥列表得到
//赎回脚本。
func parseRedeem(threshold int, pubKeys []string, redeemHex string) (*multisig.RedeemScript, error) {
	if redeemHex != "" {
		if threshold != 0 || len(pubKeys) != 0 {
			return nil, errors.New("--redeemscript may not be combined with " +
				"--threshold or --pubkey")
		}
		script, err := multisig.ParseScriptHex(redeemHex)
		if err != nil {
			return nil, err
		}
		return multisig.ParseRedeemScript(script)
	}
	keys := make([]multisig.PublicKey, len(pubKeys))
	for i, s := range pubKeys {
		k, err := multisig.ParsePublicKeyHex(s)
		if err != nil {
			return nil, errContext(err, fmt.Sprintf("public key %d", i))
		}
		keys[i] = k
	}
	return multisig.MultiSigOutput(threshold, keys)
}

//parseOutPoint解析<txid>:<index>。
func parseOutPoint(s string) (*chainhash.Hash, uint32, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return nil, 0, fmt.Errorf("outpoint %q is not <txid>:<index>", s)
	}
	hash, err := chainhash.NewHashFromStr(s[:i])
	if err != nil {
		return nil, 0, errContext(err, "invalid txid")
	}
	index, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return nil, 0, errContext(err, "invalid output index")
	}
	return hash, uint32(index), nil
}

//parsePayment解析<address>=<amount>，金额格式见cfgutil.ParseAmount。
func parsePayment(s string) (multisig.Address, int64, error) {
	i := strings.Index(s, "=")
	if i < 0 {
		return multisig.Address{}, 0, fmt.Errorf("output %q is not <address>=<amount>", s)
	}
	addr, err := multisig.DecodeAddress(s[:i], activeNet.Params)
	if err != nil {
		return multisig.Address{}, 0, err
	}
	var amount cfgutil.AmountFlag
	if err := amount.UnmarshalFlag(s[i+1:]); err != nil {
		return multisig.Address{}, 0, errContext(err, "invalid amount")
	}
	return addr, int64(amount.Amount), nil
}

func pickNoun(n int, singularForm, pluralForm string) string {
	if n == 1 {
		return singularForm
	}
	return pluralForm
}

//withSession打开会话数据库，读取命名的会话并调用fn。
func withSession(name string, fn func(*sessiondb.DB, *sessiondb.Session) error) error {
	db, err := openSessions(false)
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.Fetch(name)
	if err != nil {
		return errContext(err, "session "+name)
	}
	if s.Net != activeNet {
		return fmt.Errorf("session %s belongs to network %s", name, s.Net.Name)
	}
	return fn(db, s)
}

func oneArg(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one %s argument", what)
	}
	return args[0], nil
}

func printInputStates(b *multisig.TxBuilder, msgTx *wire.MsgTx) error {
	for i := 0; i < b.NumInputs(); i++ {
		state, err := b.InputState(i)
		if err != nil {
			return err
		}
		fmt.Printf("  input %d %v: %v\n", i, msgTx.TxIn[i].PreviousOutPoint, state)
	}
	return nil
}

type genKeyCmd struct{}

func (c *genKeyCmd) Execute(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	k, err := multisig.GeneratePrivateKey()
	if err != nil {
		return errContext(err, "failed to generate key")
	}
	defer k.Zero()

	wif, err := k.EncodeWIF(activeNet.Params)
	if err != nil {
		return err
	}
	pubKey := k.DefaultPubKey()
	pkScript, err := multisig.PubKeyHashOutput(pubKey.Hash160())
	if err != nil {
		return err
	}
	addr, err := multisig.AddressFromOutputScript(pkScript, activeNet.Params)
	if err != nil {
		return err
	}
	fmt.Printf("wif:     %s\npubkey:  %s\naddress: %s\n", wif, pubKey, addr)
	return nil
}

type addressCmd struct {
	Threshold    int      `short:"m" long:"threshold" description:"Number of required signatures"`
	PubKeys      []string `short:"k" long:"pubkey" description:"Hex encoded public key, in script order (repeatable)"`
	RedeemScript string   `long:"redeemscript" description:"Hex encoded multisig redeem script, instead of --threshold and --pubkey"`
}

func (c *addressCmd) Execute(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	redeem, err := parseRedeem(c.Threshold, c.PubKeys, c.RedeemScript)
	if err != nil {
		return err
	}
	addr, err := multisig.AddressFromOutputScript(redeem.ScriptHashOutput(), activeNet.Params)
	if err != nil {
		return err
	}
	fmt.Printf("redeemscript: %s\n", redeem.Script().Hex())
	fmt.Printf("policy:       %d of %d\n", redeem.Threshold(), len(redeem.PubKeys()))
	fmt.Printf("address:      %s\n", addr)
	return nil
}

type createCmd struct {
	Threshold    int      `short:"m" long:"threshold" description:"Number of required signatures"`
	PubKeys      []string `short:"k" long:"pubkey" description:"Hex encoded public key, in script order (repeatable)"`
	RedeemScript string   `long:"redeemscript" description:"Hex encoded multisig redeem script, instead of --threshold and --pubkey"`
	Inputs       []string `short:"i" long:"input" description:"Multisig output to spend as <txid>:<index> (repeatable)"`
	Outputs      []string `short:"o" long:"output" description:"Payment as <address>=<amount>, amount in BTC or with a unit such as 20000 sat (repeatable)"`
	LockTime     uint32   `long:"locktime" description:"Transaction lock time"`
}

func (c *createCmd) Execute(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	name, err := oneArg(args, "session name")
	if err != nil {
		return err
	}
	if len(c.Inputs) == 0 || len(c.Outputs) == 0 {
		return errors.New("at least one --input and one --output are required")
	}
	redeem, err := parseRedeem(c.Threshold, c.PubKeys, c.RedeemScript)
	if err != nil {
		return err
	}

	b := multisig.NewTxBuilder()
	if err := b.SetLockTime(c.LockTime); err != nil {
		return err
	}
	redeems := make([]*multisig.RedeemScript, 0, len(c.Inputs))
	for _, in := range c.Inputs {
		hash, index, err := parseOutPoint(in)
		if err != nil {
			return err
		}
		idx, err := b.AddInput(*hash, index)
		if err != nil {
			return err
		}
		if err := b.SetPrevOutScript(idx, redeem.ScriptHashOutput()); err != nil {
			return err
		}
		redeems = append(redeems, redeem)
	}
	for _, out := range c.Outputs {
		addr, amount, err := parsePayment(out)
		if err != nil {
			return err
		}
		if _, err := b.AddOutputAddress(addr, amount); err != nil {
			return err
		}
	}

	s, err := sessiondb.NewSession(name, activeNet, b, redeems)
	if err != nil {
		return err
	}
	db, err := openSessions(true)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Create(s); err != nil {
		return errContext(err, "session "+name)
	}
	fmt.Printf("created session %s: %d %s, %d %s, unsigned txid %v\n", name,
		b.NumInputs(), pickNoun(b.NumInputs(), "input", "inputs"),
		b.NumOutputs(), pickNoun(b.NumOutputs(), "output", "outputs"),
		b.UnsignedTxHash())
	return nil
}

type signCmd struct {
	Yes bool `short:"y" long:"yes" description:"Sign without asking for confirmation"`
}

func (c *signCmd) Execute(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	name, err := oneArg(args, "session name")
	if err != nil {
		return err
	}
	return withSession(name, func(db *sessiondb.DB, s *sessiondb.Session) error {
		b, err := s.Builder()
		if err != nil {
			return err
		}
		k, err := prompt.PrivateKey(activeNet.Params)
		if err != nil {
			return errContext(err, "failed to read private key")
		}
		defer k.Zero()

		if !c.Yes {
			msgTx := s.Tx.MsgTx()
			for _, out := range msgTx.TxOut {
				script, err := multisig.ParseScript(out.PkScript)
				if err != nil {
					return err
				}
				to := script.Hex()
				if addr, err := multisig.AddressFromOutputScript(script, activeNet.Params); err == nil {
					to = addr.String()
				}
				fmt.Printf("  pay %v to %s\n", btcutil.Amount(out.Value), to)
			}
			ok, err := prompt.Confirm(bufio.NewReader(os.Stdin),
				fmt.Sprintf("Sign transaction %v?", b.UnsignedTxHash()), "no")
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("signing cancelled")
			}
		}

		var signed int
		for i := 0; i < b.NumInputs(); i++ {
			err := b.Sign(i, k, s.RedeemScripts[i])
			if multisig.IsError(err, multisig.ErrKeyMismatch) {
				log.Infof("Key does not sign input %d", i)
				continue
			}
			if err != nil {
				return errContext(err, fmt.Sprintf("failed to sign input %d", i))
			}
			signed++
		}
		if signed == 0 {
			return errors.New("the private key signs no input of this session")
		}
		if err := s.SetBuilder(b); err != nil {
			return err
		}
		if err := db.Update(s); err != nil {
			return err
		}
		fmt.Printf("signed %d %s of session %s\n", signed,
			pickNoun(signed, "input", "inputs"), name)
		return printInputStates(b, s.Tx.MsgTx())
	})
}

type statusCmd struct{}

func (c *statusCmd) Execute(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	if len(args) == 0 {
		db, err := openSessions(false)
		if err != nil {
			return err
		}
		defer db.Close()
		names, err := db.Names()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	name, err := oneArg(args, "session name")
	if err != nil {
		return err
	}
	return withSession(name, func(_ *sessiondb.DB, s *sessiondb.Session) error {
		b, err := s.Builder()
		if err != nil {
			return err
		}
		msgTx := s.Tx.MsgTx()
		threshold, redeemSize := 1, 33
		if len(s.RedeemScripts) > 0 && s.RedeemScripts[0] != nil {
			threshold = s.RedeemScripts[0].Threshold()
			redeemSize = s.RedeemScripts[0].Script().Len()
		}
		fmt.Printf("session %s (%s), created %v\n", s.Name, s.Net.Name,
			s.Created.Format("2006-01-02 15:04:05"))
		fmt.Printf("unsigned txid:  %v\n", b.UnsignedTxHash())
		fmt.Printf("total output:   %v\n", helpers.SumOutputValues(msgTx.TxOut))
		fmt.Printf("estimated size: %d bytes\n",
			helpers.SignedSizeEstimate(msgTx, threshold, redeemSize))
		fmt.Printf("complete:       %v\n", b.Complete())
		return printInputStates(b, msgTx)
	})
}

type exportCmd struct{}

func (c *exportCmd) Execute(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	name, err := oneArg(args, "session name")
	if err != nil {
		return err
	}
	return withSession(name, func(_ *sessiondb.DB, s *sessiondb.Session) error {
		fmt.Println(s.Tx.Hex())
		return nil
	})
}

type combineCmd struct{}

func (c *combineCmd) Execute(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	if len(args) != 2 {
		return errors.New("expected a session name and a hex transaction")
	}
	name := args[0]
	tx, err := multisig.DeserializeTxHex(args[1])
	if err != nil {
		return err
	}
	return withSession(name, func(db *sessiondb.DB, s *sessiondb.Session) error {
		b, err := s.Builder()
		if err != nil {
			return err
		}
		other, err := multisig.NewTxBuilderFromTx(tx, s.PrevScripts)
		if err != nil {
			return errContext(err, "cannot import transaction")
		}
		if err := b.Merge(other); err != nil {
			return err
		}
		if err := s.SetBuilder(b); err != nil {
			return err
		}
		if err := db.Update(s); err != nil {
			return err
		}
		fmt.Printf("combined signatures into session %s\n", name)
		return printInputStates(b, s.Tx.MsgTx())
	})
}

type finalizeCmd struct {
	Delete bool `long:"delete" description:"Delete the session after finalizing"`
}

func (c *finalizeCmd) Execute(args []string) error {
	if err := setup(); err != nil {
		return err
	}
	name, err := oneArg(args, "session name")
	if err != nil {
		return err
	}
	return withSession(name, func(db *sessiondb.DB, s *sessiondb.Session) error {
		b, err := s.Builder()
		if err != nil {
			return err
		}
		tx, err := b.Build()
		if err != nil {
			return err
		}
		for i, prev := range s.PrevScripts {
			if prev.IsEmpty() {
				log.Warnf("Input %d has no previous script and was not verified", i)
				continue
			}
			if err := multisig.VerifyInput(tx, i, prev); err != nil {
				return err
			}
		}
		log.Infof("Finalized session %s, txid %v", name, tx.TxHash())
		fmt.Println(tx.Hex())
		if c.Delete {
			return db.Delete(name)
		}
		return nil
	})
}
