package executor

import (
	"github.com/33cn/chain33/common/address"
	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

// placeOrder implements C5 placement: freeze the committing side, persist
// OrderDetail and ActiveOrder, and log a ReceiptOrderPlaced. cord identifies
// the placing tx itself (current block height, its index within it); the
// order id both records are stored under is the placing tx's own hash.
func (d *dex) placeOrder(tx *ctypes.Transaction, index int, req *orderRequest) (*ctypes.Receipt, error) {
	user := pty.RegId(tx.From())
	cord := pty.TxCord{BlockHeight: uint32(d.GetHeight()), BlockIndex: uint16(index)}

	var order *pty.OrderDetail
	switch {
	case req.OrderType == pty.OrderLimitPrice && req.Side == pty.OrderBuy:
		order = pty.NewUserBuyLimitOrder(req.CoinSymbol, req.AssetSymbol, req.AssetAmount, req.Price, cord, user)
		order.CoinAmount = pty.CalcCoinAmount(req.AssetAmount, req.Price)
	case req.OrderType == pty.OrderLimitPrice && req.Side == pty.OrderSell:
		order = pty.NewUserSellLimitOrder(req.CoinSymbol, req.AssetSymbol, req.AssetAmount, req.Price, cord, user)
	case req.OrderType == pty.OrderMarketPrice && req.Side == pty.OrderBuy:
		order = pty.NewBuyMarketOrder(req.CoinSymbol, req.AssetSymbol, req.CoinAmount, cord, user, pty.GenUser)
	default: // market sell
		order = pty.NewSellMarketOrder(req.CoinSymbol, req.AssetSymbol, req.AssetAmount, cord, user, pty.GenUser)
	}
	order.Mode = req.Mode
	order.DexID = req.DexID
	order.OperatorFeeRatio = req.OperatorFeeRatio

	// 1. compute the freeze per side (§4.5 step 1).
	var coinFreeze, assetFreeze uint64
	switch req.Side {
	case pty.OrderBuy:
		if req.OrderType == pty.OrderLimitPrice {
			coinFreeze = order.CoinAmount
		} else {
			coinFreeze = req.CoinAmount
		}
	case pty.OrderSell:
		assetFreeze = req.AssetAmount
	}

	// 2. debit available, credit frozen, atomically.
	var receipt *ctypes.Receipt
	if coinFreeze > 0 {
		r, err := d.freeze(req.CoinSymbol, user, coinFreeze)
		if err != nil {
			return nil, err
		}
		receipt = r
	}
	if assetFreeze > 0 {
		r, err := d.freeze(req.AssetSymbol, user, assetFreeze)
		if err != nil {
			return nil, err
		}
		receipt = mergeReceipts(receipt, r)
	}

	// 3-4. persist OrderDetail + ActiveOrder.
	orderID := tx.Hash()
	var orderIDFixed pty.TxId
	copy(orderIDFixed[:], orderID)
	active := pty.NewActiveOrder(order.GenerateType, cord)

	oe := pty.NewEncoder()
	order.Encode(oe)
	ae := pty.NewEncoder()
	active.Encode(ae)

	logEntry := &pty.ReceiptOrderPlaced{OrderID: orderIDFixed, Order: *order}
	le := pty.NewEncoder()
	logEntry.Encode(le)

	kv := []*ctypes.KeyValue{
		{Key: calcOrderDetailKey(orderID), Value: oe.Bytes()},
		{Key: calcActiveOrderKey(orderID), Value: ae.Bytes()},
	}
	placedLog := &ctypes.ReceiptLog{Ty: pty.TyLogDexOrderPlaced, Log: le.Bytes()}

	return mergeReceipts(receipt, &ctypes.Receipt{Ty: ctypes.ExecOk, KV: kv, Logs: []*ctypes.ReceiptLog{placedLog}}), nil
}

// cancelOrder implements C5 cancel: unfreeze the order's remaining
// committed side and retire both its ActiveOrder and OrderDetail records.
func (d *dex) cancelOrder(tx *ctypes.Transaction, orderID pty.TxId) (*ctypes.Receipt, error) {
	active, order, err := d.loadOrder(orderID[:])
	if err != nil {
		return nil, err
	}
	if active == nil || order == nil {
		return nil, &pty.TxError{Kind: pty.TxStateConflict}
	}
	if pty.RegId(tx.From()) != order.UserRegID {
		return nil, &pty.TxError{Kind: pty.TxBadSignature}
	}

	var coinRefund, assetRefund uint64
	switch order.OrderSide {
	case pty.OrderBuy:
		coinRefund = order.CoinAmount - active.TotalDealCoinAmount
	case pty.OrderSell:
		assetRefund = order.AssetAmount - active.TotalDealAssetAmount
	}

	var receipt *ctypes.Receipt
	if coinRefund > 0 {
		r, err := d.unfreeze(order.CoinSymbol, order.UserRegID, coinRefund)
		if err != nil {
			return nil, err
		}
		receipt = r
	}
	if assetRefund > 0 {
		r, err := d.unfreeze(order.AssetSymbol, order.UserRegID, assetRefund)
		if err != nil {
			return nil, err
		}
		receipt = mergeReceipts(receipt, r)
	}

	logEntry := &pty.ReceiptOrderCancel{OrderID: orderID, RefundCoin: coinRefund, RefundAsset: assetRefund}
	le := pty.NewEncoder()
	logEntry.Encode(le)
	cancelLog := &ctypes.ReceiptLog{Ty: pty.TyLogDexOrderCancel, Log: le.Bytes()}

	kv := []*ctypes.KeyValue{
		{Key: calcActiveOrderKey(orderID[:]), Value: nil},
		{Key: calcOrderDetailKey(orderID[:]), Value: nil},
	}
	return mergeReceipts(receipt, &ctypes.Receipt{Ty: ctypes.ExecOk, KV: kv, Logs: []*ctypes.ReceiptLog{cancelLog}}), nil
}

// freeze moves amount from user's available balance into its frozen balance
// held under this dex's own exec address.
func (d *dex) freeze(symbol string, user pty.RegId, amount uint64) (*ctypes.Receipt, error) {
	acc, err := assetAccountDB(symbol, d.GetStateDB())
	if err != nil {
		return nil, err
	}
	r, err := acc.ExecFrozen(string(user), address.ExecAddress(d.GetName()), int64(amount))
	if err != nil {
		return nil, &pty.TxError{Kind: pty.TxInsufficientBalance}
	}
	return r, nil
}

// unfreeze moves amount back from user's frozen balance to its available
// balance; the counterpart to freeze, used by both cancel and settlement
// completion (§4.6 step 12).
func (d *dex) unfreeze(symbol string, user pty.RegId, amount uint64) (*ctypes.Receipt, error) {
	acc, err := assetAccountDB(symbol, d.GetStateDB())
	if err != nil {
		return nil, err
	}
	return acc.ExecActive(string(user), address.ExecAddress(d.GetName()), int64(amount))
}

// loadOrder reads both the compact ActiveOrder index entry and the full
// OrderDetail for orderID; either missing yields (nil, nil, nil) so callers
// can tell "not found" apart from a decode error.
func (d *dex) loadOrder(orderID []byte) (*pty.ActiveOrder, *pty.OrderDetail, error) {
	av, err := d.GetStateDB().Get(calcActiveOrderKey(orderID))
	if err != nil || av == nil {
		return nil, nil, nil
	}
	active := &pty.ActiveOrder{}
	if err := active.Decode(pty.NewDecoder(av)); err != nil {
		return nil, nil, err
	}
	ov, err := d.GetStateDB().Get(calcOrderDetailKey(orderID))
	if err != nil || ov == nil {
		return nil, nil, nil
	}
	order := &pty.OrderDetail{}
	if err := order.Decode(pty.NewDecoder(ov)); err != nil {
		return nil, nil, err
	}
	return active, order, nil
}

// mergeReceipts concatenates KV/Logs from two receipts, tolerating either
// side being nil; used whenever a single Exec call needs both an
// account-balance receipt and this package's own state-write receipt.
func mergeReceipts(a, b *ctypes.Receipt) *ctypes.Receipt {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &ctypes.Receipt{
		Ty:   ctypes.ExecOk,
		KV:   append(a.KV, b.KV...),
		Logs: append(a.Logs, b.Logs...),
	}
}
