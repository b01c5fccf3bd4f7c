package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/33cn/chain33/account"
	"github.com/33cn/chain33/common"
	"github.com/33cn/chain33/common/address"
	dbm "github.com/33cn/chain33/common/db"
	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

const (
	PrivKeyB = "0x19c069234f9d3e61135fefbeb7791b149cdf6af536f26bebb310d4cd22c3fee4"
	AddrB    = "1JRNjdEqp4LJ5fqycUBm9ayCKSeeskgMKR"

	PrivKeyMatcher = "0x7a80a1f75d7360c6123c32a78ecf978c1ac55636f87892df38d8b85a9aeff115"
	AddrMatcher    = "1NLHPEcbTWWxxU3dGUZBhayjrCHD3psX7k"

	testDexID = uint32(7)
)

func seedTokenBalance(stateDB dbm.KV, addr string, balance int64) {
	accDB, _ := account.NewAccountDB(defaultAssetExec, "TEST", stateDB)
	accDB.SaveExecAccount(address.ExecAddress(pty.DexX), &ctypes.Account{Addr: addr, Balance: balance})
}

// registerTestOperator saves a DexOperator whose MatchRegID is a real
// derived address (AddrMatcher), since the reserved dex's implicit operator
// binds to the literal "system-matcher" regid and can never be satisfied by
// a signed tx's From().
func registerTestOperator(t *testing.T, stateDB dbm.KV) {
	t.Helper()
	op := &pty.DexOperator{OwnerRegID: pty.RegId(AddrMatcher), MatchRegID: pty.RegId(AddrMatcher)}
	kv := saveOperator(testDexID, op)
	assert.Nil(t, stateDB.Set(kv.Key, kv.Value))
}

// placeExBuyLimit and placeExSellLimit each place a DefaultMode limit order routed through
// testDexID, the Ex-variant's equivalent of the basic buy/sell-limit used
// elsewhere in this package's tests.
func placeExBuyLimit(t *testing.T, driver *dex, privKey string, index int) *ctypes.Transaction {
	t.Helper()
	tx, err := pty.CreateRawBuyLimitExTx(&pty.BuyLimitExReq{
		Mode: pty.ModeDefault, DexID: testDexID,
		CoinSymbol: "bty", AssetSymbol: "TEST", AssetAmount: 1000, Price: 200000000,
	})
	assert.Nil(t, err)
	tx, err = signDexTx(tx, privKey)
	assert.Nil(t, err)
	_, err = driver.Exec(tx, index)
	assert.Nil(t, err)
	return tx
}

func placeExSellLimit(t *testing.T, driver *dex, privKey string, index int) *ctypes.Transaction {
	t.Helper()
	tx, err := pty.CreateRawSellLimitExTx(&pty.SellLimitExReq{
		Mode: pty.ModeDefault, DexID: testDexID,
		CoinSymbol: "bty", AssetSymbol: "TEST", AssetAmount: 1000, Price: 200000000,
	})
	assert.Nil(t, err)
	tx, err = signDexTx(tx, privKey)
	assert.Nil(t, err)
	_, err = driver.Exec(tx, index)
	assert.Nil(t, err)
	return tx
}

// TestExecSettleFullyFillsBothOrders places a buy-limit and a matching
// sell-limit against a registered dex operator, then settles the two orders
// against each other in one deal item that exactly exhausts both sides'
// remaining capacity.
func TestExecSettleFullyFillsBothOrders(t *testing.T) {
	stateDB, _ := dbm.NewGoMemDB("1", "2", 100)
	seedCoinsBalance(stateDB, AddrA, 100000000)
	seedTokenBalance(stateDB, AddrB, 100000000)
	registerTestOperator(t, stateDB)
	driver := newTestDexDriver(stateDB)

	buyTx := placeExBuyLimit(t, driver, PrivKeyA, 0)
	sellTx := placeExSellLimit(t, driver, PrivKeyB, 1)

	dealCoin := pty.CalcCoinAmount(1000, 200000000)
	settleTx, err := pty.CreateRawSettleTx(&pty.SettleReq{
		DexID: testDexID,
		DealItems: []pty.DealItemReq{{
			BuyOrderID:      common.ToHex(buyTx.Hash())[2:],
			SellOrderID:     common.ToHex(sellTx.Hash())[2:],
			DealPrice:       200000000,
			DealCoinAmount:  dealCoin,
			DealAssetAmount: 1000,
		}},
	})
	assert.Nil(t, err)
	settleTx, err = signDexTx(settleTx, PrivKeyMatcher)
	assert.Nil(t, err)

	receipt, err := driver.Exec(settleTx, 2)
	assert.Nil(t, err)
	assert.NotNil(t, receipt)

	coinAcc := account.NewCoinsAccount()
	coinAcc.SetDB(stateDB)
	buyerCoin := coinAcc.LoadExecAccount(AddrA, address.ExecAddress(pty.DexX))
	assert.Equal(t, int64(0), buyerCoin.Frozen)
	assert.Equal(t, int64(100000000)-int64(dealCoin), buyerCoin.Balance)

	sellerCoin := coinAcc.LoadExecAccount(AddrB, address.ExecAddress(pty.DexX))
	assert.Equal(t, int64(dealCoin), sellerCoin.Balance)

	tokenAcc, _ := account.NewAccountDB(defaultAssetExec, "TEST", stateDB)
	buyerAsset := tokenAcc.LoadExecAccount(AddrA, address.ExecAddress(pty.DexX))
	assert.Equal(t, int64(1000), buyerAsset.Balance)

	sellerAsset := tokenAcc.LoadExecAccount(AddrB, address.ExecAddress(pty.DexX))
	assert.Equal(t, int64(0), sellerAsset.Frozen)
	assert.Equal(t, int64(100000000-1000), sellerAsset.Balance)

	settleLog := receipt.Logs[len(receipt.Logs)-1]
	assert.Equal(t, int32(pty.TyLogDexSettle), settleLog.Ty)

	// both orders are now fully filled and must be retired, not merely
	// updated: their ActiveOrder/OrderDetail records are gone.
	active, order, err := driver.loadOrder(buyTx.Hash())
	assert.Nil(t, err)
	assert.Nil(t, active)
	assert.Nil(t, order)
}

// TestExecSettleRejectsUnauthorizedMatcher confirms settlement fails
// atomically (no state written) when the sender is not the registered
// dex's matcher.
func TestExecSettleRejectsUnauthorizedMatcher(t *testing.T) {
	stateDB, _ := dbm.NewGoMemDB("1", "2", 100)
	seedCoinsBalance(stateDB, AddrA, 100000000)
	seedTokenBalance(stateDB, AddrB, 100000000)
	registerTestOperator(t, stateDB)
	driver := newTestDexDriver(stateDB)

	buyTx := placeExBuyLimit(t, driver, PrivKeyA, 0)
	sellTx := placeExSellLimit(t, driver, PrivKeyB, 1)

	dealCoin := pty.CalcCoinAmount(1000, 200000000)
	settleTx, err := pty.CreateRawSettleTx(&pty.SettleReq{
		DexID: testDexID,
		DealItems: []pty.DealItemReq{{
			BuyOrderID:      common.ToHex(buyTx.Hash())[2:],
			SellOrderID:     common.ToHex(sellTx.Hash())[2:],
			DealPrice:       200000000,
			DealCoinAmount:  dealCoin,
			DealAssetAmount: 1000,
		}},
	})
	assert.Nil(t, err)
	// signed by the buyer, not the registered matcher
	settleTx, err = signDexTx(settleTx, PrivKeyA)
	assert.Nil(t, err)

	_, err = driver.Exec(settleTx, 2)
	assert.NotNil(t, err)
	serr, ok := err.(*pty.SettleError)
	assert.True(t, ok)
	assert.Equal(t, pty.SettleUnauthorizedMatcher, serr.Kind)
}
