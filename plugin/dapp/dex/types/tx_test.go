package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testVersion   = uint32(1)
	testHeight    = uint64(100)
	testFeeSymbol = "bty"
	testFees      = uint64(100000)
)

var testTxUID = RegId("10qqcSCdghpy6pH3DjxrGtG4vy6rgnZEwC")

func TestBuyLimitTxRoundTrip(t *testing.T) {
	tx := NewBuyLimitTx("bty", "TEST", 1000, 200000000)
	e := NewEncoder()
	tx.Encode(e)
	var got BuyLimitTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

func TestSellLimitTxRoundTrip(t *testing.T) {
	tx := NewSellLimitTx("bty", "TEST", 1000, 200000000)
	e := NewEncoder()
	tx.Encode(e)
	var got SellLimitTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

func TestBuyLimitExTxRoundTrip(t *testing.T) {
	tx := NewBuyLimitExTx(ModeDefault, 7, 5000, "bty", "TEST", 1000, 200000000, "hello", RegId("op"))
	e := NewEncoder()
	tx.Encode(e)
	var got BuyLimitExTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

func TestSellLimitExTxRoundTrip(t *testing.T) {
	tx := NewSellLimitExTx(ModeRequireAuth, 7, 5000, "bty", "TEST", 1000, 200000000, "hello", RegId("op"))
	e := NewEncoder()
	tx.Encode(e)
	var got SellLimitExTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

func TestBuyMarketTxRoundTrip(t *testing.T) {
	tx := NewBuyMarketTx("bty", "TEST", 123456)
	e := NewEncoder()
	tx.Encode(e)
	var got BuyMarketTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

func TestSellMarketTxRoundTrip(t *testing.T) {
	tx := NewSellMarketTx("bty", "TEST", 123456)
	e := NewEncoder()
	tx.Encode(e)
	var got SellMarketTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

// The upstream constructor discards the caller's memo and commits an empty
// one instead; the round trip must reflect that, not the argument passed in.
func TestBuyMarketExTxDropsMemo(t *testing.T) {
	tx := NewBuyMarketExTx(ModeDefault, 7, 5000, "bty", "TEST", 123456, "should be discarded", RegId("op"))
	assert.Equal(t, "", tx.Memo)

	e := NewEncoder()
	tx.Encode(e)
	var got BuyMarketExTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
	assert.Equal(t, "", got.Memo)
}

func TestSellMarketExTxRoundTrip(t *testing.T) {
	tx := NewSellMarketExTx(ModeDefault, 7, 5000, "bty", "TEST", 123456, "hello", RegId("op"))
	e := NewEncoder()
	tx.Encode(e)
	var got SellMarketExTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

func TestCancelOrderTxRoundTrip(t *testing.T) {
	tx := NewCancelOrderTx(TxId{1, 2, 3, 4})
	e := NewEncoder()
	tx.Encode(e)
	var got CancelOrderTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

func TestSettleTxRoundTrip(t *testing.T) {
	items := []DealItem{
		{BuyOrderID: TxId{1}, SellOrderID: TxId{2}, DealPrice: 200000000, DealCoinAmount: 2000, DealAssetAmount: 10},
	}
	tx := NewSettleTx(items)
	assert.Equal(t, DexReservedID, tx.DexID)
	assert.Equal(t, "", tx.Memo)

	e := NewEncoder()
	tx.Encode(e)
	var got SettleTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

func TestSettleExTxRoundTrip(t *testing.T) {
	items := []DealItem{
		{BuyOrderID: TxId{1}, SellOrderID: TxId{2}, DealPrice: 200000000, DealCoinAmount: 2000, DealAssetAmount: 10},
	}
	tx := NewSettleExTx(42, items, "matched")
	e := NewEncoder()
	tx.Encode(e)
	var got SettleTx
	assert.Nil(t, got.Decode(NewDecoder(e.Bytes())))
	assert.Equal(t, *tx, got)
}

// ComputeSignatureHash must be a pure, deterministic function of its
// arguments: same inputs, same hash, every time.
func TestComputeSignatureHashDeterministic(t *testing.T) {
	tx := NewBuyLimitTx("bty", "TEST", 1000, 200000000)
	h1 := tx.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	h2 := tx.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	assert.Equal(t, h1, h2)
}

// Any field that rides along on the wire (other than the known-quirk
// exclusions below) must also change the signature hash, or a miner could
// tamper with it post-signature without invalidating the signature.
func TestComputeSignatureHashSensitiveToBody(t *testing.T) {
	base := NewBuyLimitTx("bty", "TEST", 1000, 200000000)
	changedPrice := NewBuyLimitTx("bty", "TEST", 1000, 300000000)
	changedAmount := NewBuyLimitTx("bty", "TEST", 2000, 200000000)

	h := base.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	hPrice := changedPrice.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	hAmount := changedAmount.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)

	assert.NotEqual(t, h, hPrice)
	assert.NotEqual(t, h, hAmount)
	assert.NotEqual(t, hPrice, hAmount)
}

func TestComputeSignatureHashSensitiveToPrefix(t *testing.T) {
	tx := NewBuyLimitTx("bty", "TEST", 1000, 200000000)
	h := tx.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)

	hHeight := tx.ComputeSignatureHash(testVersion, testHeight+1, testTxUID, testFeeSymbol, testFees)
	hUID := tx.ComputeSignatureHash(testVersion, testHeight, RegId("someone-else"), testFeeSymbol, testFees)
	hFees := tx.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees+1)

	assert.NotEqual(t, h, hHeight)
	assert.NotEqual(t, h, hUID)
	assert.NotEqual(t, h, hFees)
}

// Distinct tx types with otherwise identical fields must not collide,
// since hashPrefix folds the type tag in before the body.
func TestComputeSignatureHashDistinguishesTxType(t *testing.T) {
	buy := NewBuyLimitTx("bty", "TEST", 1000, 200000000)
	sell := NewSellLimitTx("bty", "TEST", 1000, 200000000)
	hBuy := buy.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	hSell := sell.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	assert.NotEqual(t, hBuy, hSell)
}

// OrderExtra.hash deliberately omits Memo and OperatorRegID from the
// shared helper; the Ex variants append them by hand afterward. Confirm
// they are still covered by changing them and observing the hash move.
func TestComputeSignatureHashExCoversMemoAndOperator(t *testing.T) {
	base := NewBuyLimitExTx(ModeDefault, 7, 5000, "bty", "TEST", 1000, 200000000, "memo-a", RegId("op-a"))
	diffMemo := NewBuyLimitExTx(ModeDefault, 7, 5000, "bty", "TEST", 1000, 200000000, "memo-b", RegId("op-a"))
	diffOperator := NewBuyLimitExTx(ModeDefault, 7, 5000, "bty", "TEST", 1000, 200000000, "memo-a", RegId("op-b"))

	h := base.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	hMemo := diffMemo.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	hOperator := diffOperator.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)

	assert.NotEqual(t, h, hMemo)
	assert.NotEqual(t, h, hOperator)
}

// Known-preserved vulnerability: SettleTx's signature hash folds in only
// the deal items, never dex_id or memo, even though CDEXSettleExTx puts
// both on the wire. A signed settlement for one dex_id/memo must verify
// unchanged against any other dex_id/memo with the same deal items.
func TestSettleTxSignatureHashIgnoresDexIDAndMemo(t *testing.T) {
	items := []DealItem{
		{BuyOrderID: TxId{1}, SellOrderID: TxId{2}, DealPrice: 200000000, DealCoinAmount: 2000, DealAssetAmount: 10},
	}
	reserved := NewSettleTx(items)
	extended := NewSettleExTx(99, items, "totally different memo")

	hReserved := reserved.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	hExtended := extended.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)

	assert.Equal(t, hReserved, hExtended)
	assert.NotEqual(t, reserved.DexID, extended.DexID)
	assert.NotEqual(t, reserved.Memo, extended.Memo)
}

// But the hash does still move if the deal items themselves change.
func TestSettleTxSignatureHashSensitiveToDealItems(t *testing.T) {
	items := []DealItem{
		{BuyOrderID: TxId{1}, SellOrderID: TxId{2}, DealPrice: 200000000, DealCoinAmount: 2000, DealAssetAmount: 10},
	}
	otherItems := []DealItem{
		{BuyOrderID: TxId{1}, SellOrderID: TxId{2}, DealPrice: 200000000, DealCoinAmount: 4000, DealAssetAmount: 20},
	}
	a := NewSettleTx(items)
	b := NewSettleTx(otherItems)

	ha := a.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	hb := b.ComputeSignatureHash(testVersion, testHeight, testTxUID, testFeeSymbol, testFees)
	assert.NotEqual(t, ha, hb)
}
