//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig_test

import (
	"errors"
	"testing"

	ms "github.com/btcsuite/btcmultisig/multisig"
)

//TestErrorCodeStringer测试所有错误代码都有文本表示，并且
//重构和重命名错误代码没有让文本表示偏离。
func TestErrorCodeStringer(t *testing.T) {
	tests := []struct {
		in   ms.ErrorCode
		want string
	}{
		{ms.ErrDecode, "ErrDecode"},
		{ms.ErrInvalidScriptParams, "ErrInvalidScriptParams"},
		{ms.ErrUnrecognizedScriptTemplate, "ErrUnrecognizedScriptTemplate"},
		{ms.ErrMalformedTransaction, "ErrMalformedTransaction"},
		{ms.ErrValueOutOfRange, "ErrValueOutOfRange"},
		{ms.ErrInsufficientSignatures, "ErrInsufficientSignatures"},
		{ms.ErrInvalidHash, "ErrInvalidHash"},
		{ms.ErrInputIndex, "ErrInputIndex"},
		{ms.ErrDuplicateInput, "ErrDuplicateInput"},
		{ms.ErrTxFrozen, "ErrTxFrozen"},
		{ms.ErrKeyMismatch, "ErrKeyMismatch"},
		{ms.ErrScriptMismatch, "ErrScriptMismatch"},
		{ms.ErrRawSigning, "ErrRawSigning"},
		{ms.ErrTxMismatch, "ErrTxMismatch"},
		{ms.ErrScriptVerify, "ErrScriptVerify"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	if int(ms.TstLastErr) != len(tests)-1 {
		t.Errorf("Wrong number of errorCodeStrings. Got: %d, want: %d",
			int(ms.TstLastErr), len(tests)-1)
	}

	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\ngot: %s\nwant: %s", i, result, test.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	inner := errors.New("boom")
	tests := []struct {
		err  ms.Error
		want string
	}{
		{ms.Error{ErrorCode: ms.ErrDecode, Description: "bad key"}, "bad key"},
		{ms.Error{ErrorCode: ms.ErrDecode, Description: "bad key", Err: inner}, "bad key: boom"},
	}
	for i, test := range tests {
		if got := test.err.Error(); got != test.want {
			t.Errorf("Error #%d: got %q, want %q", i, got, test.want)
		}
		if !ms.IsError(test.err, ms.ErrDecode) {
			t.Errorf("IsError #%d: want true", i)
		}
		if ms.IsError(test.err, ms.ErrTxFrozen) {
			t.Errorf("IsError #%d: wrong code matched", i)
		}
	}
	if ms.IsError(inner, ms.ErrDecode) {
		t.Errorf("IsError matched a foreign error")
	}
}
