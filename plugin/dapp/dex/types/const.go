package types

// DriverName is the fixed name of the underlying executor driver; GetName()
// may return an aliased name when multiple dex instances are deployed.
const DriverName = "dex"

// tx type tags, one byte in the signature-hash preimage, mirroring how
// trade/types/const.go enumerates its op codes. Exact numeric values only
// matter for this subsystem's own consensus; they are not shared with any
// other dapp's tag space.
const (
	TyBuyLimitOrder = iota + 1
	TyBuyLimitOrderEx
	TySellLimitOrder
	TySellLimitOrderEx
	TyBuyMarketOrder
	TyBuyMarketOrderEx
	TySellMarketOrder
	TySellMarketOrderEx
	TyCancelOrder
	TySettle
)

// action names, used by ExecutorType.GetTypeMap / CreateTx dispatch,
// matching the shape of trade's actionName map in trade/types/trade.go.
const (
	NameBuyLimitOrder    = "BuyLimit"
	NameBuyLimitOrderEx  = "BuyLimitEx"
	NameSellLimitOrder   = "SellLimit"
	NameSellLimitOrderEx = "SellLimitEx"
	NameBuyMarketOrder   = "BuyMarket"
	NameBuyMarketOrderEx = "BuyMarketEx"
	NameSellMarketOrder  = "SellMarket"
	NameSellMarketOrderEx = "SellMarketEx"
	NameCancelOrder      = "CancelOrder"
	NameSettle           = "Settle"
)

// receipt log ids, in the 7xx range to stay clear of the ids trade/types/const.go
// already claims in the 3xx range.
const (
	TyLogDexOrderPlaced  = 710
	TyLogDexOrderCancel  = 711
	TyLogDexSettle       = 712
)

// PriceBoost is the fixed-point scale between nominal price and the
// on-chain integer price: price = nominal_price * PriceBoost.
const PriceBoost = 100000000

// RatioBoost is the fixed-point scale for fee ratios: a ratio of 1e6 means 1%.
const RatioBoost = 100000000

// DefaultMaxOperatorFeeRatio is the default ceiling on operator_fee_ratio in
// RequireAuth mode: 5e7 / RatioBoost = 50%.
const DefaultMaxOperatorFeeRatio = 50000000

// DexReservedID is the system-owned dex used for protocol-internal orders
// (CDP-triggered market orders etc); its operator record is implicit,
// see ReservedOperator in entity.go.
const DexReservedID uint32 = 0

// MinViableTrade is the dust floor below which a market order's unspent
// coin is considered unfillable and the order is force-completed.
const MinViableTrade = 1

// TxSigVersion is the signature-hash version an operator's co-signature
// commits to; bumped only if ComputeSignatureHash's preimage layout ever
// changes.
const TxSigVersion = uint32(1)

// NativeFeeSymbol is the fee symbol every ComputeSignatureHash call folds
// into its preimage; this chain has no multi-asset fee market, so it is
// fixed rather than read off the tx.
const NativeFeeSymbol = "bty"

// MaxVarintVecLen caps the element count VARINT accepted by DecodeVec, so a
// corrupt or adversarial payload can't make decode allocate unbounded memory.
const MaxVarintVecLen = 1 << 16

// MaxVarintBytes caps the byte length of a canonical VARINT encoding; a
// 64-bit value never needs more than 10 base-128 groups.
const MaxVarintBytes = 10
