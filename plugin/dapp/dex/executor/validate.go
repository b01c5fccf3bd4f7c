package executor

import (
	dbm "github.com/33cn/chain33/common/db"
	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

// AssetRegistry is the symbol whitelist/range-limit source C4's checks 1-3
// consult. The concrete implementation production code uses (configRegistry
// in dex.go) is backed by this plugin's own deploy-time subConfig, loaded
// the same way token/executor/token.go's subConfig is: decoded once in
// Init from the chain's exec.sub["dex"] stanza. The interface itself stays
// pluggable so tests can swap in a fake without touching checkOrder.
type AssetRegistry interface {
	IsWhitelisted(symbol string) bool
	MaxAmount(symbol string) uint64
	PriceRange(coinSymbol, assetSymbol string) (min, max uint64)
}

// orderRequest is the C4/C5-common shape every order-placing tx variant
// reduces to, independent of whether it is the basic or operator-aware wire
// form; see extractOrderRequest.
type orderRequest struct {
	Mode             pty.OperatorMode
	DexID            uint32
	OperatorFeeRatio uint64
	CoinSymbol       string
	AssetSymbol      string
	AssetAmount      uint64
	CoinAmount       uint64
	Price            uint64
	Side             pty.OrderSide
	OrderType        pty.OrderType
	OperatorRegID    pty.RegId
	OperatorSignType int32
	OperatorPubkey   []byte
	OperatorSig      []byte
	// signHash recomputes the signature hash the operator co-signed; nil
	// for the four basic variants, which carry no operator block at all.
	signHash func(version uint32, validHeight uint64, txUID pty.RegId, feeSymbol string, fees uint64) pty.TxId
}

// extractOrderRequest normalizes any of the eight order-placing tx bodies
// into one orderRequest; CancelOrderTx/SettleTx are handled by their own
// code paths and never reach here.
func extractOrderRequest(body interface{}) (*orderRequest, bool) {
	switch v := body.(type) {
	case *pty.BuyLimitTx:
		return &orderRequest{
			DexID: pty.DexReservedID, CoinSymbol: v.CoinSymbol, AssetSymbol: v.AssetSymbol,
			AssetAmount: v.AssetAmount, Price: v.Price, Side: pty.OrderBuy, OrderType: pty.OrderLimitPrice,
		}, true
	case *pty.SellLimitTx:
		return &orderRequest{
			DexID: pty.DexReservedID, CoinSymbol: v.CoinSymbol, AssetSymbol: v.AssetSymbol,
			AssetAmount: v.AssetAmount, Price: v.Price, Side: pty.OrderSell, OrderType: pty.OrderLimitPrice,
		}, true
	case *pty.BuyLimitExTx:
		return &orderRequest{
			Mode: v.Mode, DexID: v.DexID, OperatorFeeRatio: v.OperatorFeeRatio, OperatorRegID: v.OperatorRegID,
			OperatorSignType: v.OperatorSignType, OperatorPubkey: v.OperatorPubkey, OperatorSig: v.OperatorSig,
			CoinSymbol: v.CoinSymbol, AssetSymbol: v.AssetSymbol, AssetAmount: v.AssetAmount, Price: v.Price,
			Side: pty.OrderBuy, OrderType: pty.OrderLimitPrice, signHash: v.ComputeSignatureHash,
		}, true
	case *pty.SellLimitExTx:
		return &orderRequest{
			Mode: v.Mode, DexID: v.DexID, OperatorFeeRatio: v.OperatorFeeRatio, OperatorRegID: v.OperatorRegID,
			OperatorSignType: v.OperatorSignType, OperatorPubkey: v.OperatorPubkey, OperatorSig: v.OperatorSig,
			CoinSymbol: v.CoinSymbol, AssetSymbol: v.AssetSymbol, AssetAmount: v.AssetAmount, Price: v.Price,
			Side: pty.OrderSell, OrderType: pty.OrderLimitPrice, signHash: v.ComputeSignatureHash,
		}, true
	case *pty.BuyMarketTx:
		return &orderRequest{
			DexID: pty.DexReservedID, CoinSymbol: v.CoinSymbol, AssetSymbol: v.AssetSymbol,
			CoinAmount: v.CoinAmount, Side: pty.OrderBuy, OrderType: pty.OrderMarketPrice,
		}, true
	case *pty.SellMarketTx:
		return &orderRequest{
			DexID: pty.DexReservedID, CoinSymbol: v.CoinSymbol, AssetSymbol: v.AssetSymbol,
			AssetAmount: v.AssetAmount, Side: pty.OrderSell, OrderType: pty.OrderMarketPrice,
		}, true
	case *pty.BuyMarketExTx:
		return &orderRequest{
			Mode: v.Mode, DexID: v.DexID, OperatorFeeRatio: v.OperatorFeeRatio, OperatorRegID: v.OperatorRegID,
			OperatorSignType: v.OperatorSignType, OperatorPubkey: v.OperatorPubkey, OperatorSig: v.OperatorSig,
			CoinSymbol: v.CoinSymbol, AssetSymbol: v.AssetSymbol, CoinAmount: v.CoinAmount,
			Side: pty.OrderBuy, OrderType: pty.OrderMarketPrice, signHash: v.ComputeSignatureHash,
		}, true
	case *pty.SellMarketExTx:
		return &orderRequest{
			Mode: v.Mode, DexID: v.DexID, OperatorFeeRatio: v.OperatorFeeRatio, OperatorRegID: v.OperatorRegID,
			OperatorSignType: v.OperatorSignType, OperatorPubkey: v.OperatorPubkey, OperatorSig: v.OperatorSig,
			CoinSymbol: v.CoinSymbol, AssetSymbol: v.AssetSymbol, AssetAmount: v.AssetAmount,
			Side: pty.OrderSell, OrderType: pty.OrderMarketPrice, signHash: v.ComputeSignatureHash,
		}, true
	default:
		return nil, false
	}
}

// checkOrder runs the C4 gauntlet in spec order, returning the first
// InvalidOrderReason it hits. tx is needed only by check 6 (operator
// co-signature), which reconstructs the hash the operator signed from
// tx.From()/tx.Expire/tx.Fee; it may be nil for any tx that can never take
// ModeRequireAuth (CancelOrderTx, SettleTx, the four basic variants).
func checkOrder(req *orderRequest, db dbm.KV, registry AssetRegistry, systemMatcherRegID pty.RegId, tx *ctypes.Transaction) error {
	// 1. symbol whitelist
	if req.CoinSymbol == req.AssetSymbol {
		return &pty.InvalidOrderReason{Kind: pty.ReasonSameSymbol}
	}
	if registry != nil && (!registry.IsWhitelisted(req.CoinSymbol) || !registry.IsWhitelisted(req.AssetSymbol)) {
		return &pty.InvalidOrderReason{Kind: pty.ReasonUnknownSymbol}
	}

	// 2. amount range
	amount := req.AssetAmount
	if req.OrderType == pty.OrderMarketPrice && req.Side == pty.OrderBuy {
		amount = req.CoinAmount
	}
	if amount == 0 {
		return &pty.InvalidOrderReason{Kind: pty.ReasonAmountOutOfRange, Detail: "amount must be non-zero"}
	}
	if registry != nil {
		sym := req.AssetSymbol
		if req.OrderType == pty.OrderMarketPrice && req.Side == pty.OrderBuy {
			sym = req.CoinSymbol
		}
		if max := registry.MaxAmount(sym); max != 0 && amount > max {
			return &pty.InvalidOrderReason{Kind: pty.ReasonAmountOutOfRange}
		}
	}

	// 3. price range (limit only)
	if req.OrderType == pty.OrderLimitPrice {
		if req.Price == 0 {
			return &pty.InvalidOrderReason{Kind: pty.ReasonPriceOutOfRange, Detail: "price must be non-zero"}
		}
		if registry != nil {
			min, max := registry.PriceRange(req.CoinSymbol, req.AssetSymbol)
			if (min != 0 && req.Price < min) || (max != 0 && req.Price > max) {
				return &pty.InvalidOrderReason{Kind: pty.ReasonPriceOutOfRange}
			}
		}
	}

	// 4. operator existence
	needsOperator := req.DexID != pty.DexReservedID || req.Mode == pty.ModeRequireAuth
	var operator *pty.DexOperator
	if needsOperator {
		op, err := loadOperator(db, req.DexID, systemMatcherRegID)
		if err != nil {
			return err
		}
		if op == nil {
			return &pty.InvalidOrderReason{Kind: pty.ReasonUnknownDexOperator}
		}
		operator = op
	}

	// 5. fee-rate policy
	if req.Mode == pty.ModeDefault {
		if req.OperatorFeeRatio != 0 {
			return &pty.InvalidOrderReason{Kind: pty.ReasonModeFeeMismatch}
		}
	} else {
		ratioCap := uint64(pty.DefaultMaxOperatorFeeRatio)
		if operator != nil {
			sum := operator.MakerFeeRatio + operator.TakerFeeRatio
			if sum < ratioCap {
				ratioCap = sum
			}
		}
		if req.OperatorFeeRatio > ratioCap {
			return &pty.InvalidOrderReason{Kind: pty.ReasonFeeRatioOutOfRange}
		}
	}

	// 6. operator authorization
	if req.Mode == pty.ModeRequireAuth {
		if req.OperatorRegID.IsEmpty() {
			return &pty.InvalidOrderReason{Kind: pty.ReasonMissingOperatorAuth}
		}
		if operator != nil && req.OperatorRegID != operator.OwnerRegID && req.OperatorRegID != operator.MatchRegID {
			return &pty.InvalidOrderReason{Kind: pty.ReasonMissingOperatorAuth, Detail: "operator regid does not match the registered operator"}
		}
		// The operator's own co-signature over this order's
		// ComputeSignatureHash is what actually proves consent; the regid
		// match above only proves the placing user's claim is well-formed.
		if req.signHash == nil || tx == nil {
			return &pty.InvalidOrderReason{Kind: pty.ReasonBadOperatorSignature}
		}
		hash := req.signHash(pty.TxSigVersion, uint64(tx.Expire), pty.RegId(tx.From()), pty.NativeFeeSymbol, uint64(tx.Fee))
		if !pty.VerifyOperatorSignature(hash[:], req.OperatorSignType, req.OperatorPubkey, req.OperatorSig, req.OperatorRegID) {
			return &pty.InvalidOrderReason{Kind: pty.ReasonBadOperatorSignature}
		}
	}

	return nil
}
