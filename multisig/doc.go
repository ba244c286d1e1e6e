//版权所有（c）2014-2019 BTCSuite开发者
//此源代码的使用由ISC控制
//可以在许可文件中找到的许可证。

/*
包multisig提供比特币m-of-n多重签名和P2SH交易的构建与签名。

概述

多重签名包的目的是让一组互不信任的签名方共同控制资金：
从n个公钥派生出需要其中任意m个签名才能花费的脚本和地址，
构建花费这些资金的交易，并在各签名方之间收集签名直到达到阈值。

包本身不做任何网络I/O，也不持久化任何东西。广播交易、查询余额
和未花费输出、保管私钥都由调用者负责。

密钥

私钥以WIF格式导入（DecodePrivateKey）或新生成（GeneratePrivateKey）。
公钥保留它实际使用的序列化形式，因为压缩和非压缩公钥的哈希不同，
它们对于地址和脚本来说是不同的密钥。

脚本和地址

MultiSigOutput从阈值和有序的公钥列表创建赎回脚本。公钥顺序是
脚本的一部分，改变顺序会得到不同的地址。ScriptHashOutput和
AddressFromOutputScript从赎回脚本的哈希派生P2SH输出脚本和地址：

	redeem, err := multisig.MultiSigOutput(2, pubKeys)
	...
	addr, err := multisig.AddressFromOutputScript(redeem.ScriptHashOutput(),
		&chaincfg.MainNetParams)

交易和签名

TxBuilder是交易的可变形式。添加输入和输出后，每个签名方用自己的
私钥和赎回脚本调用Sign。签名按公钥在脚本中的位置累积，任何签名
之后交易内容就被冻结。每个输入都达到阈值后，Build返回可以广播的
不可变交易。

签名方不在同一进程时，BuildIncomplete把部分签名的状态编码为交易，
下一个签名方用NewTxBuilderFromTx导入后继续签名；并行签名的结果
可以用Merge合并。

错误

包返回的错误都是Error类型，ErrorCode字段标识错误的种类，可以用
IsError检查。
*/
package multisig
