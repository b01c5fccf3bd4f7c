package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/33cn/chain33/account"
	"github.com/33cn/chain33/common"
	"github.com/33cn/chain33/common/address"
	"github.com/33cn/chain33/common/crypto"
	dbm "github.com/33cn/chain33/common/db"
	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

// PrivKeyA/PrivKeyB mirror plugin/dapp/trade/executor/exec_test.go's fixed
// test keys, reused here so From() resolves to a known address without
// standing up a real keystore.
const (
	PrivKeyA = "0x6da92a632ab7deb67d38c0f6560bcfed28167998f6496db64c258d5e8393a81b"
	AddrA    = "1KSBd17H7ZK8iT37aJztFB22XGwsPTdwE4"
)

func signDexTx(tx *ctypes.Transaction, hexPrivKey string) (*ctypes.Transaction, error) {
	c, err := crypto.New(ctypes.GetSignName(pty.DriverName, ctypes.SECP256K1))
	if err != nil {
		return tx, err
	}
	b, err := common.FromHex(hexPrivKey)
	if err != nil {
		return tx, err
	}
	privKey, err := c.PrivKeyFromBytes(b)
	if err != nil {
		return tx, err
	}
	tx.Sign(int32(ctypes.SECP256K1), privKey)
	return tx, nil
}

func newTestDexDriver(stateDB dbm.KV) *dex {
	driver := newDex().(*dex)
	driver.SetEnv(10, 1600000000, 1)
	driver.SetStateDB(stateDB)
	return driver
}

func seedCoinsBalance(stateDB dbm.KV, addr string, balance int64) {
	acc := account.NewCoinsAccount()
	acc.SetDB(stateDB)
	acc.SaveExecAccount(address.ExecAddress(pty.DexX), &ctypes.Account{Addr: addr, Balance: balance})
}

func TestExecBuyLimitFreezesCoin(t *testing.T) {
	stateDB, _ := dbm.NewGoMemDB("1", "2", 100)
	seedCoinsBalance(stateDB, AddrA, 100000000)
	driver := newTestDexDriver(stateDB)

	tx, err := pty.CreateRawBuyLimitTx(&pty.BuyLimitReq{
		CoinSymbol: "bty", AssetSymbol: "TEST", AssetAmount: 1000, Price: 200000000,
	})
	assert.Nil(t, err)
	tx, err = signDexTx(tx, PrivKeyA)
	assert.Nil(t, err)

	receipt, err := driver.Exec(tx, 0)
	assert.Nil(t, err)
	assert.NotNil(t, receipt)

	// expect: 1000 asset units at price 2.0 (PriceBoost-scaled) costs
	// CalcCoinAmount(1000, 200000000) coin, frozen from the buyer's balance.
	expectFreeze := int64(pty.CalcCoinAmount(1000, 200000000))
	acc := account.NewCoinsAccount()
	acc.SetDB(stateDB)
	got := acc.LoadExecAccount(AddrA, address.ExecAddress(pty.DexX))
	assert.Equal(t, 100000000-expectFreeze, got.Balance)
	assert.Equal(t, expectFreeze, got.Frozen)

	placedLog := receipt.Logs[len(receipt.Logs)-1]
	assert.Equal(t, int32(pty.TyLogDexOrderPlaced), placedLog.Ty)
}

func TestExecCancelOrderRefundsRemainder(t *testing.T) {
	stateDB, _ := dbm.NewGoMemDB("1", "2", 100)
	seedCoinsBalance(stateDB, AddrA, 100000000)
	driver := newTestDexDriver(stateDB)

	tx, err := pty.CreateRawBuyLimitTx(&pty.BuyLimitReq{
		CoinSymbol: "bty", AssetSymbol: "TEST", AssetAmount: 1000, Price: 200000000,
	})
	assert.Nil(t, err)
	tx, err = signDexTx(tx, PrivKeyA)
	assert.Nil(t, err)

	_, err = driver.Exec(tx, 0)
	assert.Nil(t, err)

	cancelTx, err := pty.CreateRawCancelOrderTx(&pty.CancelOrderReq{OrderID: common.ToHex(tx.Hash())[2:]})
	assert.Nil(t, err)
	cancelTx, err = signDexTx(cancelTx, PrivKeyA)
	assert.Nil(t, err)

	receipt, err := driver.Exec(cancelTx, 1)
	assert.Nil(t, err)
	assert.NotNil(t, receipt)

	acc := account.NewCoinsAccount()
	acc.SetDB(stateDB)
	got := acc.LoadExecAccount(AddrA, address.ExecAddress(pty.DexX))
	assert.Equal(t, int64(100000000), got.Balance)
	assert.Equal(t, int64(0), got.Frozen)

	cancelLog := receipt.Logs[len(receipt.Logs)-1]
	assert.Equal(t, int32(pty.TyLogDexOrderCancel), cancelLog.Ty)
}

func TestExecCancelOrderRejectsNonOwner(t *testing.T) {
	stateDB, _ := dbm.NewGoMemDB("1", "2", 100)
	seedCoinsBalance(stateDB, AddrA, 100000000)
	driver := newTestDexDriver(stateDB)

	tx, err := pty.CreateRawBuyLimitTx(&pty.BuyLimitReq{
		CoinSymbol: "bty", AssetSymbol: "TEST", AssetAmount: 1000, Price: 200000000,
	})
	assert.Nil(t, err)
	tx, err = signDexTx(tx, PrivKeyA)
	assert.Nil(t, err)
	_, err = driver.Exec(tx, 0)
	assert.Nil(t, err)

	otherKey := "0x19c069234f9d3e61135fefbeb7791b149cdf6af536f26bebb310d4cd22c3fee4"
	cancelTx, err := pty.CreateRawCancelOrderTx(&pty.CancelOrderReq{OrderID: common.ToHex(tx.Hash())[2:]})
	assert.Nil(t, err)
	cancelTx, err = signDexTx(cancelTx, otherKey)
	assert.Nil(t, err)

	_, err = driver.Exec(cancelTx, 1)
	assert.NotNil(t, err)
	txErr, ok := err.(*pty.TxError)
	assert.True(t, ok)
	assert.Equal(t, pty.TxBadSignature, txErr.Kind)
}
