package executor

import (
	"github.com/33cn/chain33/account"
	dbm "github.com/33cn/chain33/common/db"
)

// defaultAssetExec mirrors plugin/dapp/trade/executor/util.go's
// defaultAssetExec: on the main chain, every symbol traded here other than
// the native coin is a balance held by the token dapp's sub-accounts.
const defaultAssetExec = "token"

// nativeCoinSymbol is the only symbol accounted through account.NewCoinsAccount
// rather than account.NewAccountDB(defaultAssetExec, ...); chain33's default
// config names it "bty" (see types/defaultcfg.go), which is what every
// example dapp that checks a symbol against the native coin hard-codes.
const nativeCoinSymbol = "bty"

// assetAccountDB resolves the account.DB that holds balances of symbol,
// native coin or token, the same distinction trade/executor/util.go draws
// via GetExecSymbol/createAccountDB.
func assetAccountDB(symbol string, db dbm.KV) (*account.DB, error) {
	if symbol == nativeCoinSymbol {
		return account.NewCoinsAccount().SetDB(db), nil
	}
	return account.NewAccountDB(defaultAssetExec, symbol, db)
}
