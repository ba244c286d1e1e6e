//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

package multisig

import "fmt"

//错误代码标识一种错误
type ErrorCode int

const (
//errdecode表示编码的密钥、公钥、签名或地址
//格式错误（校验和、长度、网络前缀或标量范围）。
	ErrDecode ErrorCode = iota

//errInvalidScriptParams表示阈值、公钥数量或
//脚本参数超出允许范围，或者公钥重复。
	ErrInvalidScriptParams

//errUnrecognizedScriptTemplate表示脚本不匹配任何
//已知的标准模板。
	ErrUnrecognizedScriptTemplate

//errMalformedTransaction表示交易反序列化失败，
//例如缓冲区被截断或者有多余的字节。
	ErrMalformedTransaction

//errValueOutOfRange表示输出金额为负或超过
//货币供应上限。
	ErrValueOutOfRange

//errInsufficientSignatures表示在达到阈值之前尝试构建
//交易。
	ErrInsufficientSignatures

//errInvalidHash表示要签名的消息哈希不是32字节。
	ErrInvalidHash

//errInputIndex表示输入索引超出范围。
	ErrInputIndex

//errDuplicateInput表示同一个先前输出被引用两次。
	ErrDuplicateInput

//errTxFrozen表示在已有签名之后尝试修改交易。
	ErrTxFrozen

//errKeyMismatch表示私钥不对应脚本中的任何公钥。
	ErrKeyMismatch

//errScriptMismatch表示赎回脚本与先前的输出脚本或
//已经累积的签名所用的脚本不一致。
	ErrScriptMismatch

//errRawSigning表示生成原始签名时出错。
	ErrRawSigning

//errTxMismatch表示合并的两份签名状态不属于同一笔
//未签名交易。
	ErrTxMismatch

//errScriptVerify表示脚本引擎拒绝了某个输入的解锁脚本。
	ErrScriptVerify

//lastErr只在测试中使用，用来检查所有错误代码
//在errorCodeStrings中都有正确的翻译。
	lastErr
)

//将错误代码值映射回其常量名，以便进行漂亮的打印。
var errorCodeStrings = map[ErrorCode]string{
	ErrDecode:                     "ErrDecode",
	ErrInvalidScriptParams:        "ErrInvalidScriptParams",
	ErrUnrecognizedScriptTemplate: "ErrUnrecognizedScriptTemplate",
	ErrMalformedTransaction:       "ErrMalformedTransaction",
	ErrValueOutOfRange:            "ErrValueOutOfRange",
	ErrInsufficientSignatures:     "ErrInsufficientSignatures",
	ErrInvalidHash:                "ErrInvalidHash",
	ErrInputIndex:                 "ErrInputIndex",
	ErrDuplicateInput:             "ErrDuplicateInput",
	ErrTxFrozen:                   "ErrTxFrozen",
	ErrKeyMismatch:                "ErrKeyMismatch",
	ErrScriptMismatch:             "ErrScriptMismatch",
	ErrRawSigning:                 "ErrRawSigning",
	ErrTxMismatch:                 "ErrTxMismatch",
	ErrScriptVerify:               "ErrScriptVerify",
}

//字符串将错误代码返回为人类可读的名称。
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

//错误是在构建脚本、地址或交易以及签名过程中
//可能发生的错误。
type Error struct {
	ErrorCode   ErrorCode //描述错误的类型
	Description string    //问题的人类可读描述
	Err         error     //潜在错误
}

//错误满足错误接口并打印人类可读的错误。
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

//newError创建新错误。
func newError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

//IsError返回err是否为具有给定错误代码的Error。
func IsError(err error, code ErrorCode) bool {
	e, ok := err.(Error)
	return ok && e.ErrorCode == code
}
