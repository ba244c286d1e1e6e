//版权所有（c）2015-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package prompt

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcmultisig/internal/zero"
	"github.com/btcsuite/btcmultisig/multisig"
	"golang.org/x/crypto/ssh/terminal"
)

//List用给定的前缀、有效响应列表和默认项提示用户，直到用户
//输入有效的响应。
func List(reader *bufio.Reader, prefix string, validResponses []string, defaultEntry string) (string, error) {
	validStrings := strings.Join(validResponses, "/")
	var prompt string
	if defaultEntry != "" {
		prompt = fmt.Sprintf("%s (%s) [%s]: ", prefix, validStrings,
			defaultEntry)
	} else {
		prompt = fmt.Sprintf("%s (%s): ", prefix, validStrings)
	}

	for {
		fmt.Print(prompt)
		reply, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		reply = strings.TrimSpace(strings.ToLower(reply))
		if reply == "" {
			reply = defaultEntry
		}

		for _, validResponse := range validResponses {
			if reply == validResponse {
				return reply, nil
			}
		}
	}
}

//Confirm提示用户回答是或否。
func Confirm(reader *bufio.Reader, prefix string, defaultEntry string) (bool, error) {
	valid := []string{"n", "no", "y", "yes"}
	response, err := List(reader, prefix, valid, defaultEntry)
	if err != nil {
		return false, err
	}
	return response == "yes" || response == "y", nil
}

//Secret从终端读取一行，不回显，重复提示直到输入非空。
//调用者用完后应清零结果。
func Secret(prefix string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	for {
		fmt.Fprintf(os.Stderr, "%s: ", prefix)
		secret, err := terminal.ReadPassword(fd)
		fmt.Fprint(os.Stderr, "\n")
		if err != nil {
			return nil, err
		}
		trimmed := bytes.TrimSpace(secret)
		if len(trimmed) == 0 {
			continue
		}
		if len(trimmed) != len(secret) {
			trimmed = append([]byte(nil), trimmed...)
			zero.Bytes(secret)
		}
		return trimmed, nil
	}
}

//PrivateKey提示输入给定网络的WIF私钥，直到输入能解码为止。
func PrivateKey(net *chaincfg.Params) (*multisig.PrivateKey, error) {
	for {
		wif, err := Secret("WIF private key")
		if err != nil {
			return nil, err
		}
		key, err := multisig.DecodePrivateKey(string(wif), net)
		zero.Bytes(wif)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid private key: %v\n", err)
			continue
		}
		return key, nil
	}
}
