package types

// Receipt log types and their LogType decoders, the counterpart of
// plugin/dapp/trade/types/trade.go's generated ReceiptTrade* structs and
// plugin/dapp/lottery/types/decoder.go's LotteryXxxLog wrappers. Unlike
// those, the receipts here are encoded with this package's own canonical
// codec (see codec.go) rather than types.Encode/Decode, since nothing about
// a settlement/order receipt is part of the consensus-critical tx format —
// only readability by block explorers and wallets matters, so Decode just
// needs to round-trip what Exec wrote.

// ReceiptOrderPlaced is logged by order.go whenever a BuyLimit/SellLimit/
// BuyMarket/SellMarket(Ex) tx is accepted: the full placed order plus the
// id (its own tx's TxId) the settlement/cancel paths will reference it by.
type ReceiptOrderPlaced struct {
	OrderID TxId
	Order   OrderDetail
}

func (r *ReceiptOrderPlaced) Encode(e *Encoder) {
	e.PutTxId(r.OrderID)
	r.Order.Encode(e)
}

func (r *ReceiptOrderPlaced) Decode(d *Decoder) error {
	id, err := d.GetTxId()
	if err != nil {
		return err
	}
	r.OrderID = id
	return r.Order.Decode(d)
}

// ReceiptOrderCancel is logged by order.go when a CancelOrder tx removes an
// order: the cancelled order's id and the coin and asset amounts unfrozen
// back to its owner.
type ReceiptOrderCancel struct {
	OrderID     TxId
	RefundCoin  uint64
	RefundAsset uint64
}

func (r *ReceiptOrderCancel) Encode(e *Encoder) {
	e.PutTxId(r.OrderID)
	e.PutVarint(r.RefundCoin)
	e.PutVarint(r.RefundAsset)
}

func (r *ReceiptOrderCancel) Decode(d *Decoder) error {
	var err error
	if r.OrderID, err = d.GetTxId(); err != nil {
		return err
	}
	if r.RefundCoin, err = d.GetVarint(); err != nil {
		return err
	}
	if r.RefundAsset, err = d.GetVarint(); err != nil {
		return err
	}
	return nil
}

// ReceiptSettle is logged by settle.go once per accepted Settle tx: the
// dex the match happened on and the deal items it applied, mirroring the
// tx's own DealItems field so a listener never needs to re-fetch the tx.
type ReceiptSettle struct {
	DexID     uint32
	DealItems []DealItem
}

func (r *ReceiptSettle) Encode(e *Encoder) {
	e.PutVarint(uint64(r.DexID))
	EncodeVec(e, r.DealItems, func(e *Encoder, it DealItem) { it.Encode(e) })
}

func (r *ReceiptSettle) Decode(d *Decoder) error {
	dexID, err := d.GetVarint()
	if err != nil {
		return err
	}
	r.DexID = uint32(dexID)
	r.DealItems, err = DecodeVec(d, func(d *Decoder) (DealItem, error) {
		var it DealItem
		err := it.Decode(d)
		return it, err
	})
	return err
}

// OrderPlacedLogDecoder implements types.LogType for TyLogDexOrderPlaced.
type OrderPlacedLogDecoder struct{}

func (OrderPlacedLogDecoder) Name() string {
	return "LogDexOrderPlaced"
}

func (OrderPlacedLogDecoder) Decode(msg []byte) (interface{}, error) {
	var r ReceiptOrderPlaced
	if err := r.Decode(NewDecoder(msg)); err != nil {
		return nil, err
	}
	return r, nil
}

// OrderCancelLogDecoder implements types.LogType for TyLogDexOrderCancel.
type OrderCancelLogDecoder struct{}

func (OrderCancelLogDecoder) Name() string {
	return "LogDexOrderCancel"
}

func (OrderCancelLogDecoder) Decode(msg []byte) (interface{}, error) {
	var r ReceiptOrderCancel
	if err := r.Decode(NewDecoder(msg)); err != nil {
		return nil, err
	}
	return r, nil
}

// SettleLogDecoder implements types.LogType for TyLogDexSettle.
type SettleLogDecoder struct{}

func (SettleLogDecoder) Name() string {
	return "LogDexSettle"
}

func (SettleLogDecoder) Decode(msg []byte) (interface{}, error) {
	var r ReceiptSettle
	if err := r.Decode(NewDecoder(msg)); err != nil {
		return nil, err
	}
	return r, nil
}
