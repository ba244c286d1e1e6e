//版权所有（c）2015-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

//Package zero清除内存中的私钥材料：终端读入的WIF字符串、
//私钥标量和它们的中间缓冲区。
package zero

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec"
)

//Bytes把每个切片的所有字节设为零。
func Bytes(bufs ...[]byte) {
	for _, b := range bufs {
		for i := range b {
			b[i] = 0
		}
	}
}

//BigInt覆盖x底层的字并把x设为0。只调用SetInt64会留下旧的字。
func BigInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
}

//PrivateKey清除私钥标量，公钥坐标保留。k为nil时什么也不做。
func PrivateKey(k *btcec.PrivateKey) {
	if k == nil {
		return
	}
	BigInt(k.D)
}
