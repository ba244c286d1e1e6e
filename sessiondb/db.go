//版权所有（c）2015-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

//Package sessiondb把部分签名的花费会话保存在bbolt数据库中，
//使不同的签名方可以在不同时间、不同进程里接着签名。
//
//每个会话保存一笔以不完整形式编码的交易（缺失的签名用
//OP_0占位）、每个输入的先前锁定脚本，以及P2SH输入的赎回脚本。
package sessiondb

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/btcsuite/btcmultisig/internal/cfgutil"
	"github.com/btcsuite/btcmultisig/multisig"
	"github.com/btcsuite/btcmultisig/netparams"
	bbolt "github.com/coreos/bbolt"
)

const (
	//rowVersion是会话行的当前序列化版本。
	rowVersion uint32 = 1

	//openTimeout是等待其他进程释放数据库文件锁的时间。
	openTimeout = time.Second
)

var sessionBucketName = []byte("sessions")

//Session是一笔正在收集签名的交易。
type Session struct {
	Name    string
	Net     *netparams.Params
	Created time.Time

	//Tx是交易的不完整编码，由TxBuilder.BuildIncomplete生成。
	Tx *multisig.Tx

	//PrevScripts为每个输入保存先前锁定脚本，未知时为空。
	PrevScripts []multisig.Script

	//RedeemScripts为每个输入保存赎回脚本，非P2SH输入为nil。
	RedeemScripts []*multisig.RedeemScript
}

//NewSession从构建器的当前状态创建会话。redeemScripts为nil，
//或者为每个输入提供一项。
func NewSession(name string, net *netparams.Params, b *multisig.TxBuilder,
	redeemScripts []*multisig.RedeemScript) (*Session, error) {

	if redeemScripts != nil && len(redeemScripts) != b.NumInputs() {
		return nil, fmt.Errorf("got %d redeem scripts for %d inputs",
			len(redeemScripts), b.NumInputs())
	}
	s := &Session{
		Name:          name,
		Net:           net,
		Created:       time.Now(),
		RedeemScripts: make([]*multisig.RedeemScript, b.NumInputs()),
	}
	copy(s.RedeemScripts, redeemScripts)
	if err := s.SetBuilder(b); err != nil {
		return nil, err
	}
	return s, nil
}

//Builder从会话重建可以继续签名的构建器。
func (s *Session) Builder() (*multisig.TxBuilder, error) {
	return multisig.NewTxBuilderFromTx(s.Tx, s.PrevScripts)
}

//SetBuilder用构建器的当前签名状态替换会话的交易。
func (s *Session) SetBuilder(b *multisig.TxBuilder) error {
	tx, err := b.BuildIncomplete()
	if err != nil {
		return err
	}
	prevScripts := make([]multisig.Script, b.NumInputs())
	for i := range prevScripts {
		prevScripts[i], err = b.PrevOutScript(i)
		if err != nil {
			return err
		}
	}
	s.Tx = tx
	s.PrevScripts = prevScripts
	return nil
}

//dbSessionRow是会话在数据库中的gob编码形式。
type dbSessionRow struct {
	Version       uint32
	Network       string
	Created       int64
	Tx            []byte
	PrevScripts   [][]byte
	RedeemScripts [][]byte
}

func serializeSession(s *Session) ([]byte, error) {
	row := dbSessionRow{
		Version:       rowVersion,
		Network:       s.Net.Name,
		Created:       s.Created.Unix(),
		Tx:            s.Tx.Bytes(),
		PrevScripts:   make([][]byte, len(s.PrevScripts)),
		RedeemScripts: make([][]byte, len(s.RedeemScripts)),
	}
	for i, script := range s.PrevScripts {
		row.PrevScripts[i] = script.Bytes()
	}
	for i, redeem := range s.RedeemScripts {
		if redeem != nil {
			row.RedeemScripts[i] = redeem.Script().Bytes()
		}
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(row); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deserializeSession(name string, serialized []byte) (*Session, error) {
	var row dbSessionRow
	if err := gob.NewDecoder(bytes.NewReader(serialized)).Decode(&row); err != nil {
		return nil, fmt.Errorf("cannot deserialize session %q: %v", name, err)
	}
	if row.Version != rowVersion {
		return nil, ErrUnknownVersion
	}
	net, err := netparams.ByName(row.Network)
	if err != nil {
		return nil, err
	}
	tx, err := multisig.DeserializeTx(row.Tx)
	if err != nil {
		return nil, err
	}
	s := &Session{
		Name:          name,
		Net:           net,
		Created:       time.Unix(row.Created, 0),
		Tx:            tx,
		PrevScripts:   make([]multisig.Script, len(row.PrevScripts)),
		RedeemScripts: make([]*multisig.RedeemScript, len(row.RedeemScripts)),
	}
	for i, b := range row.PrevScripts {
		if s.PrevScripts[i], err = multisig.ParseScript(b); err != nil {
			return nil, err
		}
	}
	for i, b := range row.RedeemScripts {
		if len(b) == 0 {
			continue
		}
		script, err := multisig.ParseScript(b)
		if err != nil {
			return nil, err
		}
		if s.RedeemScripts[i], err = multisig.ParseRedeemScript(script); err != nil {
			return nil, err
		}
	}
	return s, nil
}

//DB是会话数据库。
type DB struct {
	bolt *bbolt.DB
}

//Open打开dbPath处的会话数据库。create为假且文件不存在时返回
//ErrDbDoesNotExist。
func Open(dbPath string, create bool) (*DB, error) {
	if !create {
		exists, err := cfgutil.FileExists(dbPath)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrDbDoesNotExist
		}
	}
	boltDB, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, convertErr(err)
	}
	err = boltDB.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucketName)
		return err
	})
	if err != nil {
		boltDB.Close()
		return nil, convertErr(err)
	}
	log.Debugf("Opened session database %s", dbPath)
	return &DB{bolt: boltDB}, nil
}

//Close关闭数据库。
func (db *DB) Close() error {
	return convertErr(db.bolt.Close())
}

func (db *DB) put(s *Session, mustExist bool) error {
	if s.Name == "" {
		return ErrNameRequired
	}
	serialized, err := serializeSession(s)
	if err != nil {
		return err
	}
	err = db.bolt.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionBucketName)
		exists := bucket.Get([]byte(s.Name)) != nil
		switch {
		case mustExist && !exists:
			return ErrSessionNotFound
		case !mustExist && exists:
			return ErrSessionExists
		}
		return bucket.Put([]byte(s.Name), serialized)
	})
	return convertErr(err)
}

//Create保存新的会话。同名会话已存在时返回ErrSessionExists。
func (db *DB) Create(s *Session) error {
	if err := db.put(s, false); err != nil {
		return err
	}
	log.Infof("Created session %s (%d inputs)", s.Name, s.Tx.NumInputs())
	return nil
}

//Update覆盖已有的会话。会话不存在时返回ErrSessionNotFound。
func (db *DB) Update(s *Session) error {
	if err := db.put(s, true); err != nil {
		return err
	}
	log.Debugf("Updated session %s", s.Name)
	return nil
}

//Fetch读取会话。会话不存在时返回ErrSessionNotFound。
func (db *DB) Fetch(name string) (*Session, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	var serialized []byte
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(sessionBucketName).Get([]byte(name))
		if v == nil {
			return ErrSessionNotFound
		}
		//bbolt返回的值只在事务内有效。
		serialized = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, convertErr(err)
	}
	return deserializeSession(name, serialized)
}

//Delete删除会话。会话不存在时返回ErrSessionNotFound。
func (db *DB) Delete(name string) error {
	err := db.bolt.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionBucketName)
		if bucket.Get([]byte(name)) == nil {
			return ErrSessionNotFound
		}
		return bucket.Delete([]byte(name))
	})
	if err != nil {
		return convertErr(err)
	}
	log.Debugf("Deleted session %s", name)
	return nil
}

//Names按字节序返回所有会话名。
func (db *DB) Names() ([]string, error) {
	var names []string
	err := db.bolt.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionBucketName).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, convertErr(err)
}
