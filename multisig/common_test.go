//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/btcsuite/btclog"
)

func init() {
//启用日志记录（调试级别）以帮助调试失败的测试。
	logger := btclog.NewBackend(os.Stdout).Logger("TEST")
	logger.SetLevel(btclog.LevelDebug)
	UseLogger(logger)
}

//TstCheckError确保传递的错误是multisig.Error，并且错误代码
//与传递的错误代码匹配。
func TstCheckError(t *testing.T, testName string, gotErr error, wantErrCode ErrorCode) {
	t.Helper()
	msErr, ok := gotErr.(Error)
	if !ok {
		t.Errorf("%s: unexpected error type - got %T (%v), want %T",
			testName, gotErr, gotErr, Error{})
		return
	}
	if msErr.ErrorCode != wantErrCode {
		t.Errorf("%s: unexpected error code - got %s (%s), want %s",
			testName, msErr.ErrorCode, msErr, wantErrCode)
	}
}

func hexToBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

//TstPubKeys解析十六进制编码的公钥列表。
func TstPubKeys(t *testing.T, hexKeys ...string) []PublicKey {
	t.Helper()
	keys := make([]PublicKey, len(hexKeys))
	for i, h := range hexKeys {
		k, err := ParsePublicKeyHex(h)
		if err != nil {
			t.Fatalf("cannot parse public key %d: %v", i, err)
		}
		keys[i] = k
	}
	return keys
}

//TstPrivKey从单字节种子创建确定性的私钥。
func TstPrivKey(t *testing.T, seed byte, compressed bool) *PrivateKey {
	t.Helper()
	scalar := make([]byte, 32)
	scalar[31] = seed
	scalar[0] = 0x11
	k, err := PrivateKeyFromBytes(scalar, compressed)
	if err != nil {
		t.Fatal(err)
	}
	return k
}
