//版权所有（c）2013-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

//msigtool在多个签名方之间创建、签名和完成m-of-n多重签名
//交易。部分签名的状态保存在本地会话数据库中，也可以导出为
//十六进制交易在签名方之间传递。
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcmultisig/sessiondb"
	flags "github.com/jessevdk/go-flags"
)

var newlineBytes = []byte{'\n'}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Stderr.Write(newlineBytes)
	os.Exit(1)
}

func errContext(err error, context string) error {
	return fmt.Errorf("%s: %v", context, err)
}

//openSessions打开当前网络的会话数据库，必要时创建它。
func openSessions(create bool) (*sessiondb.DB, error) {
	path := sessionDbPath()
	if create {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, err
		}
	}
	db, err := sessiondb.Open(path, create)
	if err != nil {
		return nil, errContext(err, "failed to open session database "+path)
	}
	return db, nil
}

func addCommands(parser *flags.Parser) error {
	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"genkey", "Generate a private key",
			"Generate a new private key and print it in WIF with its public key and address.",
			&genKeyCmd{}},
		{"address", "Derive a multisig address",
			"Build the m-of-n redeem script for the given public keys and print its P2SH address.",
			&addressCmd{}},
		{"create", "Create a spending session",
			"Create a session spending P2SH multisig outputs to the given outputs.",
			&createCmd{}},
		{"sign", "Sign a session",
			"Sign every input of a session that the private key can sign.",
			&signCmd{}},
		{"status", "Show session status",
			"Show the signature state of a session, or list all sessions.",
			&statusCmd{}},
		{"export", "Export a session",
			"Print the partially signed transaction of a session as hex.",
			&exportCmd{}},
		{"combine", "Combine signatures",
			"Merge the signatures of a partially signed transaction into a session.",
			&combineCmd{}},
		{"finalize", "Finalize a session",
			"Assemble and verify the fully signed transaction and print it as hex.",
			&finalizeCmd{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			return err
		}
	}
	return nil
}

//msigMain解析配置并执行命令。它是独立的函数，所以延迟调用
//在main调用os.Exit之前运行。
func msigMain() error {
	parser, err := newParser()
	if err != nil {
		return err
	}
	defer closeLogRotator()

	if err := addCommands(parser); err != nil {
		return err
	}
	_, err = parser.Parse()
	return err
}

func main() {
	err := msigMain()
	if err == nil {
		return
	}
	if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
		fmt.Println(e.Message)
		os.Exit(0)
	}
	fatalf("%v", err)
}
