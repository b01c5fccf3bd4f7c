package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTxCordLess(t *testing.T) {
	a := TxCord{BlockHeight: 10, BlockIndex: 2}
	b := TxCord{BlockHeight: 10, BlockIndex: 3}
	c := TxCord{BlockHeight: 11, BlockIndex: 0}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, b.Less(c))
	assert.False(t, a.Less(a))
}

func TestOrderDetailRoundTripDuplicateTxCord(t *testing.T) {
	cord := TxCord{BlockHeight: 7, BlockIndex: 1}
	o := NewUserBuyLimitOrder("bty", "TEST", 1000, 200000000, cord, RegId("addrA"))
	o.CoinAmount = CalcCoinAmount(o.AssetAmount, o.Price)

	e := NewEncoder()
	o.Encode(e)

	var got OrderDetail
	err := got.Decode(NewDecoder(e.Bytes()))
	assert.Nil(t, err)
	assert.Equal(t, *o, got)

	// tx_cord is written twice on the wire; corrupting only the trailing
	// copy must still surface in Decode's result, proving the second read
	// really does overwrite the first rather than being ignored.
	raw := e.Bytes()
	raw[len(raw)-1] = 0x7f
	var corrupted OrderDetail
	err = corrupted.Decode(NewDecoder(raw))
	assert.Nil(t, err)
	assert.NotEqual(t, o.TxCord, corrupted.TxCord)
}

func TestOrderDetailIsEmpty(t *testing.T) {
	var o OrderDetail
	assert.True(t, o.IsEmpty())
	o.GenerateType = GenUser
	assert.False(t, o.IsEmpty())
	o.SetEmpty()
	assert.True(t, o.IsEmpty())
}

func TestActiveOrderRoundTrip(t *testing.T) {
	a := NewActiveOrder(GenUser, TxCord{BlockHeight: 3, BlockIndex: 9})
	a.TotalDealCoinAmount = 500
	a.TotalDealAssetAmount = 10

	e := NewEncoder()
	a.Encode(e)
	var got ActiveOrder
	err := got.Decode(NewDecoder(e.Bytes()))
	assert.Nil(t, err)
	assert.Equal(t, *a, got)
	assert.False(t, got.IsEmpty())
}

func TestDexOperatorRoundTripAndEmpty(t *testing.T) {
	op := &DexOperator{
		OwnerRegID:    "owner",
		MatchRegID:    "matcher",
		Name:          "acme dex",
		PortalURL:     "https://example.test",
		MakerFeeRatio: 1000000,
		TakerFeeRatio: 2000000,
		Memo:          "memo",
	}
	e := NewEncoder()
	op.Encode(e)
	var got DexOperator
	err := got.Decode(NewDecoder(e.Bytes()))
	assert.Nil(t, err)
	assert.Equal(t, *op, got)
	assert.False(t, got.IsEmpty())

	got.SetEmpty()
	assert.True(t, got.IsEmpty())
}

func TestReservedOperator(t *testing.T) {
	op := ReservedOperator(RegId("system-matcher"))
	assert.Equal(t, RegId("system-matcher"), op.MatchRegID)
	assert.True(t, op.OwnerRegID.IsEmpty())
	assert.Equal(t, uint64(0), op.MakerFeeRatio)
}

func TestDealItemRoundTrip(t *testing.T) {
	it := &DealItem{
		BuyOrderID:      TxId{1, 2, 3},
		SellOrderID:     TxId{4, 5, 6},
		DealPrice:       200000000,
		DealCoinAmount:  2000,
		DealAssetAmount: 10,
	}
	e := NewEncoder()
	it.Encode(e)
	var got DealItem
	err := got.Decode(NewDecoder(e.Bytes()))
	assert.Nil(t, err)
	assert.Equal(t, *it, got)
}

func TestCalcCoinAmountRoundsUp(t *testing.T) {
	// 3 asset units at a price of 1/3 PriceBoost should round up, not
	// truncate, since the freeze must never undercover the true cost.
	got := CalcCoinAmount(3, PriceBoost/3)
	assert.Equal(t, uint64(1), got)

	got = CalcCoinAmount(10, PriceBoost)
	assert.Equal(t, uint64(10), got)
}

func TestOrderSideAndTypeValidity(t *testing.T) {
	assert.True(t, OrderBuy.IsValid())
	assert.True(t, OrderSell.IsValid())
	assert.False(t, OrderSide(0).IsValid())

	assert.True(t, OrderLimitPrice.IsValid())
	assert.True(t, OrderMarketPrice.IsValid())
	assert.False(t, OrderType(0).IsValid())
}
