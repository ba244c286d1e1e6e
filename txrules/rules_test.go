//版权所有（c）2016-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package txrules_test

import (
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcmultisig/txrules"
	"github.com/btcsuite/btcutil"
)

func TestCheckOutput(t *testing.T) {
	tests := []struct {
		name   string
		output *wire.TxOut
		err    error
	}{
		{"zero", wire.NewTxOut(0, nil), nil},
		{"one coin", wire.NewTxOut(1e8, []byte{txscript.OP_TRUE}), nil},
		{"max", wire.NewTxOut(btcutil.MaxSatoshi, nil), nil},
		{"negative", wire.NewTxOut(-1, nil), txrules.ErrAmountNegative},
		{"above max", wire.NewTxOut(btcutil.MaxSatoshi+1, nil), txrules.ErrAmountExceedsMax},
		{"script too large", wire.NewTxOut(1, make([]byte, txscript.MaxScriptSize+1)),
			txrules.ErrScriptTooLarge},
	}
	for _, test := range tests {
		if err := txrules.CheckOutput(test.output); err != test.err {
			t.Errorf("%s: got %v, want %v", test.name, err, test.err)
		}
	}
}

func TestCheckOutputs(t *testing.T) {
	const half = btcutil.MaxSatoshi / 2
	tests := []struct {
		name   string
		values []int64
		err    error
	}{
		{"none", nil, nil},
		{"two halves", []int64{half, half}, nil},
		{"exactly max", []int64{btcutil.MaxSatoshi - 1, 1}, nil},
		{"one over", []int64{btcutil.MaxSatoshi, 1}, txrules.ErrTotalExceedsMax},
		{"overflow attempt", []int64{btcutil.MaxSatoshi, btcutil.MaxSatoshi,
			btcutil.MaxSatoshi}, txrules.ErrTotalExceedsMax},
		{"bad member", []int64{1, -5}, txrules.ErrAmountNegative},
	}
	for _, test := range tests {
		var outputs []*wire.TxOut
		for _, v := range test.values {
			outputs = append(outputs, wire.NewTxOut(v, nil))
		}
		if err := txrules.CheckOutputs(outputs); err != test.err {
			t.Errorf("%s: got %v, want %v", test.name, err, test.err)
		}
	}
}

func TestCheckAmount(t *testing.T) {
	if err := txrules.CheckAmount(btcutil.Amount(-1)); err != txrules.ErrAmountNegative {
		t.Errorf("negative amount: %v", err)
	}
	if err := txrules.CheckAmount(btcutil.Amount(btcutil.MaxSatoshi)); err != nil {
		t.Errorf("max amount: %v", err)
	}
}
