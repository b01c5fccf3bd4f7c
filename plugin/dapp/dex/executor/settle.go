package executor

import (
	"github.com/33cn/chain33/common/address"
	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

// settle implements C6: the matcher's settlement tx is processed atomically
// across its deal items (§4.6) — any failing item rejects the whole tx
// before any state is written, so every check below runs against a
// read-only working copy before any KeyValue is emitted.
func (d *dex) settle(tx *ctypes.Transaction, settleTx *pty.SettleTx, systemMatcherRegID pty.RegId) (*ctypes.Receipt, error) {
	operator, err := loadOperator(d.GetStateDB(), settleTx.DexID, systemMatcherRegID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, &pty.SettleError{Kind: pty.SettleOrderNotFound, Index: -1}
	}
	if pty.RegId(tx.From()) != operator.MatchRegID {
		return nil, &pty.SettleError{Kind: pty.SettleUnauthorizedMatcher, Index: -1}
	}

	type pair struct {
		buyID, sellID []byte
		buyActive     *pty.ActiveOrder
		buyOrder      *pty.OrderDetail
		sellActive    *pty.ActiveOrder
		sellOrder     *pty.OrderDetail
		dealPrice     uint64
		dealCoin      uint64
		dealAsset     uint64
	}
	pairs := make([]pair, 0, len(settleTx.DealItems))

	// Steps 1-7: validate every deal item against a loaded (but not yet
	// mutated) snapshot of the orders it references.
	for i, item := range settleTx.DealItems {
		buyActive, buyOrder, err := d.loadOrder(item.BuyOrderID[:])
		if err != nil {
			return nil, err
		}
		sellActive, sellOrder, err := d.loadOrder(item.SellOrderID[:])
		if err != nil {
			return nil, err
		}
		if buyActive == nil || buyOrder == nil || sellActive == nil || sellOrder == nil {
			return nil, &pty.SettleError{Kind: pty.SettleOrderNotFound, Index: i}
		}
		if buyOrder.DexID != settleTx.DexID || sellOrder.DexID != settleTx.DexID {
			return nil, &pty.SettleError{Kind: pty.SettleDexMismatch, Index: i}
		}
		if buyOrder.OrderSide != pty.OrderBuy || sellOrder.OrderSide != pty.OrderSell {
			return nil, &pty.SettleError{Kind: pty.SettleBadSide, Index: i}
		}
		if buyOrder.CoinSymbol != sellOrder.CoinSymbol || buyOrder.AssetSymbol != sellOrder.AssetSymbol {
			return nil, &pty.SettleError{Kind: pty.SettleSymbolMismatch, Index: i}
		}

		dealPrice := item.DealPrice
		switch {
		case buyOrder.OrderType == pty.OrderLimitPrice && sellOrder.OrderType == pty.OrderLimitPrice:
			if dealPrice < sellOrder.Price || dealPrice > buyOrder.Price {
				return nil, &pty.SettleError{Kind: pty.SettlePriceInfeasible, Index: i}
			}
		case buyOrder.OrderType == pty.OrderLimitPrice && sellOrder.OrderType == pty.OrderMarketPrice:
			dealPrice = buyOrder.Price
		case buyOrder.OrderType == pty.OrderMarketPrice && sellOrder.OrderType == pty.OrderLimitPrice:
			dealPrice = sellOrder.Price
		default:
			return nil, &pty.SettleError{Kind: pty.SettleBothMarket, Index: i}
		}
		if item.DealCoinAmount != pty.CalcCoinAmount(item.DealAssetAmount, dealPrice) {
			return nil, &pty.SettleError{Kind: pty.SettleFillIncoherent, Index: i}
		}

		switch buyOrder.OrderType {
		case pty.OrderLimitPrice:
			if buyActive.TotalDealAssetAmount+item.DealAssetAmount > buyOrder.AssetAmount ||
				buyActive.TotalDealCoinAmount+item.DealCoinAmount > buyOrder.CoinAmount {
				return nil, &pty.SettleError{Kind: pty.SettleOverFill, Index: i}
			}
		default: // market
			if buyActive.TotalDealCoinAmount+item.DealCoinAmount > buyOrder.CoinAmount {
				return nil, &pty.SettleError{Kind: pty.SettleOverFill, Index: i}
			}
		}
		if sellActive.TotalDealAssetAmount+item.DealAssetAmount > sellOrder.AssetAmount {
			return nil, &pty.SettleError{Kind: pty.SettleOverFill, Index: i}
		}

		pairs = append(pairs, pair{
			buyID: item.BuyOrderID[:], sellID: item.SellOrderID[:],
			buyActive: buyActive, buyOrder: buyOrder, sellActive: sellActive, sellOrder: sellOrder,
			dealPrice: dealPrice, dealCoin: item.DealCoinAmount, dealAsset: item.DealAssetAmount,
		})
	}

	// Steps 8-12: apply every validated deal item.
	var receipt *ctypes.Receipt
	logs := make([]*ctypes.ReceiptLog, 0, 1)
	for _, p := range pairs {
		// the later-placed order is the taker (§4.6 step 9); equal cords
		// cannot happen for two distinct orders, so ties never arise.
		buyTaker := p.sellOrder.TxCord.Less(p.buyOrder.TxCord)

		buyRatio := feeRatio(operator, p.buyOrder, buyTaker)
		sellRatio := feeRatio(operator, p.sellOrder, !buyTaker)
		buyerFee := p.dealAsset * buyRatio / pty.RatioBoost
		sellerFee := p.dealCoin * sellRatio / pty.RatioBoost

		feeOwner := operator.OwnerRegID
		if feeOwner.IsEmpty() {
			feeOwner = systemMatcherRegID
		}

		// buyer's frozen coin settles to the seller, net of the seller-side
		// fee, which routes to the operator owner instead (§4.6 step 9-10).
		r, err := d.transferFrozen(p.buyOrder.CoinSymbol, p.buyOrder.UserRegID, p.sellOrder.UserRegID, p.dealCoin-sellerFee)
		if err != nil {
			return nil, err
		}
		receipt = mergeReceipts(receipt, r)
		if sellerFee > 0 {
			r, err = d.transferFrozen(p.buyOrder.CoinSymbol, p.buyOrder.UserRegID, feeOwner, sellerFee)
			if err != nil {
				return nil, err
			}
			receipt = mergeReceipts(receipt, r)
		}

		// seller's frozen asset settles to the buyer, net of the buyer-side
		// fee.
		r, err = d.transferFrozen(p.sellOrder.AssetSymbol, p.sellOrder.UserRegID, p.buyOrder.UserRegID, p.dealAsset-buyerFee)
		if err != nil {
			return nil, err
		}
		receipt = mergeReceipts(receipt, r)
		if buyerFee > 0 {
			r, err = d.transferFrozen(p.sellOrder.AssetSymbol, p.sellOrder.UserRegID, feeOwner, buyerFee)
			if err != nil {
				return nil, err
			}
			receipt = mergeReceipts(receipt, r)
		}

		p.buyActive.TotalDealCoinAmount += p.dealCoin
		p.buyActive.TotalDealAssetAmount += p.dealAsset
		p.sellActive.TotalDealAssetAmount += p.dealAsset
		p.sellActive.TotalDealCoinAmount += p.dealCoin

		r, err = d.completeOrUpdate(p.buyID, p.buyOrder, p.buyActive)
		if err != nil {
			return nil, err
		}
		receipt = mergeReceipts(receipt, r)
		r, err = d.completeOrUpdate(p.sellID, p.sellOrder, p.sellActive)
		if err != nil {
			return nil, err
		}
		receipt = mergeReceipts(receipt, r)
	}

	logEntry := &pty.ReceiptSettle{DexID: settleTx.DexID}
	for _, it := range settleTx.DealItems {
		logEntry.DealItems = append(logEntry.DealItems, it)
	}
	le := pty.NewEncoder()
	logEntry.Encode(le)
	logs = append(logs, &ctypes.ReceiptLog{Ty: pty.TyLogDexSettle, Log: le.Bytes()})

	return mergeReceipts(receipt, &ctypes.Receipt{Ty: ctypes.ExecOk, Logs: logs}), nil
}

// feeRatio picks the taker/maker ratio from the operator record, letting a
// RequireAuth order's own operator_fee_ratio override up to the cap (§4.6
// step 9).
func feeRatio(operator *pty.DexOperator, order *pty.OrderDetail, taker bool) uint64 {
	ratio := operator.MakerFeeRatio
	if taker {
		ratio = operator.TakerFeeRatio
	}
	if order.Mode == pty.ModeRequireAuth {
		ratioCap := uint64(pty.DefaultMaxOperatorFeeRatio)
		if sum := operator.MakerFeeRatio + operator.TakerFeeRatio; sum < ratioCap {
			ratioCap = sum
		}
		if order.OperatorFeeRatio <= ratioCap {
			ratio = order.OperatorFeeRatio
		}
	}
	return ratio
}

// transferFrozen moves amount out of from's frozen balance straight into
// to's available balance, both held under this dex's exec address; the
// same ExecTransferFrozen relay/hashlock use to settle a locked deposit
// onto its counterparty without ever unfreezing it back to from first.
func (d *dex) transferFrozen(symbol string, from, to pty.RegId, amount uint64) (*ctypes.Receipt, error) {
	if amount == 0 {
		return nil, nil
	}
	acc, err := assetAccountDB(symbol, d.GetStateDB())
	if err != nil {
		return nil, err
	}
	return acc.ExecTransferFrozen(string(from), string(to), address.ExecAddress(d.GetName()), int64(amount))
}

// completeOrUpdate implements §4.6 step 12: a side whose remaining capacity
// has hit zero, or a market buy whose unspent coin has fallen under the dust
// floor, is unfrozen the rest of the way and retired; otherwise its
// ActiveOrder is just rewritten with the new deal totals.
func (d *dex) completeOrUpdate(orderID []byte, order *pty.OrderDetail, active *pty.ActiveOrder) (*ctypes.Receipt, error) {
	complete := false
	switch order.OrderSide {
	case pty.OrderBuy:
		if order.OrderType == pty.OrderLimitPrice {
			complete = active.TotalDealAssetAmount >= order.AssetAmount || active.TotalDealCoinAmount >= order.CoinAmount
		} else {
			remaining := order.CoinAmount - active.TotalDealCoinAmount
			complete = remaining < pty.MinViableTrade
		}
	case pty.OrderSell:
		complete = active.TotalDealAssetAmount >= order.AssetAmount
	}

	if !complete {
		ae := pty.NewEncoder()
		active.Encode(ae)
		kv := []*ctypes.KeyValue{{Key: calcActiveOrderKey(orderID), Value: ae.Bytes()}}
		return &ctypes.Receipt{Ty: ctypes.ExecOk, KV: kv}, nil
	}

	var residual uint64
	var receipt *ctypes.Receipt
	switch order.OrderSide {
	case pty.OrderBuy:
		residual = order.CoinAmount - active.TotalDealCoinAmount
		if residual > 0 {
			r, err := d.unfreeze(order.CoinSymbol, order.UserRegID, residual)
			if err != nil {
				return nil, err
			}
			receipt = r
		}
	case pty.OrderSell:
		residual = order.AssetAmount - active.TotalDealAssetAmount
		if residual > 0 {
			r, err := d.unfreeze(order.AssetSymbol, order.UserRegID, residual)
			if err != nil {
				return nil, err
			}
			receipt = r
		}
	}
	kv := []*ctypes.KeyValue{
		{Key: calcActiveOrderKey(orderID), Value: nil},
		{Key: calcOrderDetailKey(orderID), Value: nil},
	}
	return mergeReceipts(receipt, &ctypes.Receipt{Ty: ctypes.ExecOk, KV: kv}), nil
}
