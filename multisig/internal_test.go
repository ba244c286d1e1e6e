//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

var TstLastErr = lastErr

//TstSigPositions返回输入idx已签名的公钥位置。
func (b *TxBuilder) TstSigPositions(idx int) []int {
	in := b.inputs[idx]
	if in.sigs == nil {
		return nil
	}
	var positions []int
	for pos := range in.sigs.keys() {
		if _, ok := in.sigs.sigs[pos]; ok {
			positions = append(positions, pos)
		}
	}
	return positions
}
