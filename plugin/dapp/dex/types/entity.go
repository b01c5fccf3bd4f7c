package types

// Entity model (C2): pure value types plus the constructors that enforce
// cross-field rules at construction time and the emptiness predicates every
// persisted entity needs. Grounded on dexorder.h's CDEXOrderDetail /
// CDEXActiveOrder / DexOperatorDetail; nothing here touches a store.

// RegId is an account identifier. chain33 identifies accounts by address
// string rather than WaykiChain's height:index CRegID, so RegId is simply
// that address with "" as the empty sentinel.
type RegId string

// IsEmpty reports whether the account identifier is the empty sentinel.
func (r RegId) IsEmpty() bool {
	return r == ""
}

// TxId is the 256-bit hash identifying a confirmed transaction; an order's
// id is its placing transaction's TxId.
type TxId [32]byte

// IsEmpty reports whether the hash is the all-zero sentinel.
func (t TxId) IsEmpty() bool {
	return t == TxId{}
}

func (e *Encoder) PutTxId(id TxId) {
	e.PutRaw(id[:])
}

func (d *Decoder) GetTxId() (TxId, error) {
	b, err := d.GetRaw(32)
	if err != nil {
		return TxId{}, err
	}
	var id TxId
	copy(id[:], b)
	return id, nil
}

// TxCord identifies the originating transaction's position in the chain:
// the block it landed in and its index within that block. It is the
// canonical ordering key the settlement engine uses for taker/maker
// determination.
type TxCord struct {
	BlockHeight uint32
	BlockIndex  uint16
}

func (c TxCord) IsEmpty() bool {
	return c.BlockHeight == 0 && c.BlockIndex == 0
}

func (c *TxCord) SetEmpty() {
	c.BlockHeight = 0
	c.BlockIndex = 0
}

// Less reports whether c happened strictly before o: lower block height
// first, then lower in-block index.
func (c TxCord) Less(o TxCord) bool {
	if c.BlockHeight != o.BlockHeight {
		return c.BlockHeight < o.BlockHeight
	}
	return c.BlockIndex < o.BlockIndex
}

func (e *Encoder) PutTxCord(c TxCord) {
	e.PutVarint(uint64(c.BlockHeight))
	e.PutVarint(uint64(c.BlockIndex))
}

func (d *Decoder) GetTxCord() (TxCord, error) {
	h, err := d.GetVarint()
	if err != nil {
		return TxCord{}, err
	}
	i, err := d.GetVarint()
	if err != nil {
		return TxCord{}, err
	}
	return TxCord{BlockHeight: uint32(h), BlockIndex: uint16(i)}, nil
}

// OrderSide distinguishes the buy and sell side of an order.
type OrderSide uint8

const (
	OrderBuy  OrderSide = 1
	OrderSell OrderSide = 2
)

var orderSideNames = map[OrderSide]string{
	OrderBuy:  "BUY",
	OrderSell: "SELL",
}

func (s OrderSide) String() string {
	if n, ok := orderSideNames[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// IsValid reports whether s is one of the defined OrderSide values.
func (s OrderSide) IsValid() bool {
	_, ok := orderSideNames[s]
	return ok
}

// OrderType distinguishes limit-price from market-price orders.
type OrderType uint8

const (
	OrderLimitPrice  OrderType = 1
	OrderMarketPrice OrderType = 2
)

var orderTypeNames = map[OrderType]string{
	OrderLimitPrice:  "LIMIT_PRICE",
	OrderMarketPrice: "MARKET_PRICE",
}

func (t OrderType) String() string {
	if n, ok := orderTypeNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// IsValid reports whether t is one of the defined OrderType values.
func (t OrderType) IsValid() bool {
	_, ok := orderTypeNames[t]
	return ok
}

// OrderGenerateType distinguishes user-placed orders from orders the system
// itself generates (e.g. a CDP liquidation's market buy for WGRT).
type OrderGenerateType uint8

const (
	GenEmpty    OrderGenerateType = 0
	GenUser     OrderGenerateType = 1
	GenSystem   OrderGenerateType = 2
)

var orderGenTypeNames = map[OrderGenerateType]string{
	GenEmpty:  "EMPTY_ORDER",
	GenUser:   "USER_GEN_ORDER",
	GenSystem: "SYSTEM_GEN_ORDER",
}

func (g OrderGenerateType) String() string {
	if n, ok := orderGenTypeNames[g]; ok {
		return n
	}
	return "UNKNOWN"
}

// OperatorMode chooses between the simple (no operator co-signature, zero
// operator fee) and authenticated (operator co-signs, custom fee ratio up
// to a configured cap) authorization model for an order.
//
// Note: the upstream source wraps this single byte in a VARINT() macro
// (VARINT((uint8_t&)mode)); a VARINT of a value that never exceeds 1 is
// indistinguishable from a plain byte, so it is encoded as one here too.
type OperatorMode uint8

const (
	ModeDefault     OperatorMode = 0
	ModeRequireAuth OperatorMode = 1
)

func (m OperatorMode) String() string {
	if m == ModeRequireAuth {
		return "REQUIRE_AUTH"
	}
	return "DEFAULT"
}

// OrderDetail is the full record of an accepted order, stored in state under
// its order id (the placing tx's hash) and read back by that id whenever the
// settlement or cancel path needs the complete order (ActiveOrder only
// tracks mutable deal progress).
type OrderDetail struct {
	Mode                 OperatorMode
	DexID                uint32
	OperatorFeeRatio     uint64
	GenerateType         OrderGenerateType
	OrderType            OrderType
	OrderSide            OrderSide
	CoinSymbol           string
	AssetSymbol          string
	CoinAmount           uint64
	AssetAmount          uint64
	Price                uint64
	TxCord               TxCord
	UserRegID            RegId
	TotalDealCoinAmount  uint64
	TotalDealAssetAmount uint64
}

// Encode writes the field order dexorder.h's IMPLEMENT_SERIALIZE spells out
// literally: tx_cord is written once mid-struct and, verbatim, a second
// time at the end. This is almost certainly a source bug, but it is
// consensus-critical if any persisted OrderDetail relies on it, so it is
// preserved byte-for-byte rather than silently fixed; see DESIGN.md.
func (o *OrderDetail) Encode(e *Encoder) {
	e.PutByte(byte(o.Mode))
	e.PutVarint(uint64(o.DexID))
	e.PutVarint(o.OperatorFeeRatio)
	e.PutByte(byte(o.GenerateType))
	e.PutByte(byte(o.OrderType))
	e.PutByte(byte(o.OrderSide))
	e.PutString(o.CoinSymbol)
	e.PutString(o.AssetSymbol)
	e.PutVarint(o.CoinAmount)
	e.PutVarint(o.AssetAmount)
	e.PutVarint(o.Price)
	e.PutTxCord(o.TxCord)
	e.PutString(string(o.UserRegID))
	e.PutVarint(o.TotalDealCoinAmount)
	e.PutVarint(o.TotalDealAssetAmount)

	e.PutTxCord(o.TxCord) // duplicate trailing tx_cord, see doc comment above
}

// Decode mirrors Encode, including reading tx_cord twice; the second read
// overwrites the first with an identical value on any payload this package
// produced itself, but a hand-crafted payload could disagree — callers must
// not assume the two reads agree for untrusted input.
func (o *OrderDetail) Decode(d *Decoder) error {
	b, err := d.GetByte()
	if err != nil {
		return err
	}
	o.Mode = OperatorMode(b)

	dexID, err := d.GetVarint()
	if err != nil {
		return err
	}
	o.DexID = uint32(dexID)

	o.OperatorFeeRatio, err = d.GetVarint()
	if err != nil {
		return err
	}

	b, err = d.GetByte()
	if err != nil {
		return err
	}
	o.GenerateType = OrderGenerateType(b)

	b, err = d.GetByte()
	if err != nil {
		return err
	}
	o.OrderType = OrderType(b)

	b, err = d.GetByte()
	if err != nil {
		return err
	}
	o.OrderSide = OrderSide(b)

	if o.CoinSymbol, err = d.GetString(); err != nil {
		return err
	}
	if o.AssetSymbol, err = d.GetString(); err != nil {
		return err
	}
	if o.CoinAmount, err = d.GetVarint(); err != nil {
		return err
	}
	if o.AssetAmount, err = d.GetVarint(); err != nil {
		return err
	}
	if o.Price, err = d.GetVarint(); err != nil {
		return err
	}
	if o.TxCord, err = d.GetTxCord(); err != nil {
		return err
	}
	regid, err := d.GetString()
	if err != nil {
		return err
	}
	o.UserRegID = RegId(regid)
	if o.TotalDealCoinAmount, err = d.GetVarint(); err != nil {
		return err
	}
	if o.TotalDealAssetAmount, err = d.GetVarint(); err != nil {
		return err
	}
	if o.TxCord, err = d.GetTxCord(); err != nil { // trailing duplicate
		return err
	}
	return nil
}

// IsEmpty reports whether o is the zero/unset order.
func (o *OrderDetail) IsEmpty() bool {
	return o.GenerateType == GenEmpty
}

// SetEmpty resets o to the empty order: GenerateType becomes GenEmpty,
// OrderType/OrderSide fall back to limit/buy, and every other field is
// cleared. set_empty is idempotent: calling it twice is the same as calling
// it once.
func (o *OrderDetail) SetEmpty() {
	o.Mode = ModeDefault
	o.DexID = 0
	o.OperatorFeeRatio = 0
	o.GenerateType = GenEmpty
	o.OrderType = OrderLimitPrice
	o.OrderSide = OrderBuy
	o.CoinSymbol = ""
	o.AssetSymbol = ""
	o.CoinAmount = 0
	o.AssetAmount = 0
	o.Price = 0
	o.TxCord.SetEmpty()
	o.UserRegID = ""
	o.TotalDealCoinAmount = 0
	o.TotalDealAssetAmount = 0
}

// NewUserBuyLimitOrder builds a user-placed buy-limit OrderDetail, refusing
// a zero price (the limit-order invariant from spec §3: price > 0).
func NewUserBuyLimitOrder(coinSymbol, assetSymbol string, assetAmount, price uint64, cord TxCord, user RegId) *OrderDetail {
	if price == 0 {
		panic("dex: NewUserBuyLimitOrder: price must be non-zero")
	}
	return &OrderDetail{
		GenerateType: GenUser,
		OrderType:    OrderLimitPrice,
		OrderSide:    OrderBuy,
		CoinSymbol:   coinSymbol,
		AssetSymbol:  assetSymbol,
		AssetAmount:  assetAmount,
		Price:        price,
		TxCord:       cord,
		UserRegID:    user,
	}
}

// NewUserSellLimitOrder builds a user-placed sell-limit OrderDetail.
func NewUserSellLimitOrder(coinSymbol, assetSymbol string, assetAmount, price uint64, cord TxCord, user RegId) *OrderDetail {
	if price == 0 {
		panic("dex: NewUserSellLimitOrder: price must be non-zero")
	}
	return &OrderDetail{
		GenerateType: GenUser,
		OrderType:    OrderLimitPrice,
		OrderSide:    OrderSell,
		CoinSymbol:   coinSymbol,
		AssetSymbol:  assetSymbol,
		AssetAmount:  assetAmount,
		Price:        price,
		TxCord:       cord,
		UserRegID:    user,
	}
}

// NewBuyMarketOrder builds a buy-market OrderDetail; generateType lets
// callers build both user-placed orders and the system-generated ones
// (CDP-triggered WGRT purchases) from the same constructor, matching
// CDEXSysOrder::CreateBuyMarketOrder's role upstream.
func NewBuyMarketOrder(coinSymbol, assetSymbol string, coinAmount uint64, cord TxCord, user RegId, generateType OrderGenerateType) *OrderDetail {
	if coinAmount == 0 {
		panic("dex: NewBuyMarketOrder: coin amount must be non-zero")
	}
	return &OrderDetail{
		GenerateType: generateType,
		OrderType:    OrderMarketPrice,
		OrderSide:    OrderBuy,
		CoinSymbol:   coinSymbol,
		AssetSymbol:  assetSymbol,
		CoinAmount:   coinAmount,
		TxCord:       cord,
		UserRegID:    user,
	}
}

// NewSellMarketOrder builds a sell-market OrderDetail.
func NewSellMarketOrder(coinSymbol, assetSymbol string, assetAmount uint64, cord TxCord, user RegId, generateType OrderGenerateType) *OrderDetail {
	if assetAmount == 0 {
		panic("dex: NewSellMarketOrder: asset amount must be non-zero")
	}
	return &OrderDetail{
		GenerateType: generateType,
		OrderType:    OrderMarketPrice,
		OrderSide:    OrderSell,
		CoinSymbol:   coinSymbol,
		AssetSymbol:  assetSymbol,
		AssetAmount:  assetAmount,
		TxCord:       cord,
		UserRegID:    user,
	}
}

// ActiveOrder is the compact, mutable-state index entry stored by order id.
// The full OrderDetail is stored separately under the same order id; this
// struct only tracks how much has been filled so far.
type ActiveOrder struct {
	GenerateType         OrderGenerateType
	TxCord               TxCord
	TotalDealCoinAmount  uint64
	TotalDealAssetAmount uint64
}

func (a *ActiveOrder) Encode(e *Encoder) {
	e.PutByte(byte(a.GenerateType))
	e.PutTxCord(a.TxCord)
	e.PutVarint(a.TotalDealCoinAmount)
	e.PutVarint(a.TotalDealAssetAmount)
}

func (a *ActiveOrder) Decode(d *Decoder) error {
	b, err := d.GetByte()
	if err != nil {
		return err
	}
	a.GenerateType = OrderGenerateType(b)
	if a.TxCord, err = d.GetTxCord(); err != nil {
		return err
	}
	if a.TotalDealCoinAmount, err = d.GetVarint(); err != nil {
		return err
	}
	if a.TotalDealAssetAmount, err = d.GetVarint(); err != nil {
		return err
	}
	return nil
}

func (a *ActiveOrder) IsEmpty() bool {
	return a.GenerateType == GenEmpty
}

func (a *ActiveOrder) SetEmpty() {
	a.GenerateType = GenEmpty
	a.TotalDealCoinAmount = 0
	a.TotalDealAssetAmount = 0
	a.TxCord.SetEmpty()
}

// NewActiveOrder builds the index entry placement creates alongside the
// OrderDetail it indexes.
func NewActiveOrder(generateType OrderGenerateType, cord TxCord) *ActiveOrder {
	return &ActiveOrder{GenerateType: generateType, TxCord: cord}
}

// DexOperator is the persistent, registry-keyed record of a DEX operator.
// Only MatchRegID may submit settlement transactions for this DexID.
type DexOperator struct {
	OwnerRegID     RegId
	MatchRegID     RegId
	Name           string
	PortalURL      string
	MakerFeeRatio  uint64
	TakerFeeRatio  uint64
	Memo           string
}

func (o *DexOperator) Encode(e *Encoder) {
	e.PutString(string(o.OwnerRegID))
	e.PutString(string(o.MatchRegID))
	e.PutString(o.Name)
	e.PutString(o.PortalURL)
	e.PutVarint(o.MakerFeeRatio)
	e.PutVarint(o.TakerFeeRatio)
	e.PutString(o.Memo)
}

func (o *DexOperator) Decode(d *Decoder) error {
	owner, err := d.GetString()
	if err != nil {
		return err
	}
	o.OwnerRegID = RegId(owner)
	match, err := d.GetString()
	if err != nil {
		return err
	}
	o.MatchRegID = RegId(match)
	if o.Name, err = d.GetString(); err != nil {
		return err
	}
	if o.PortalURL, err = d.GetString(); err != nil {
		return err
	}
	if o.MakerFeeRatio, err = d.GetVarint(); err != nil {
		return err
	}
	if o.TakerFeeRatio, err = d.GetVarint(); err != nil {
		return err
	}
	if o.Memo, err = d.GetString(); err != nil {
		return err
	}
	return nil
}

// IsEmpty reports whether o is the zero/unregistered operator. Supplements
// dexorder.h, which defines this predicate for CDEXOrderDetail and
// CDEXActiveOrder but not (textually) for DexOperatorDetail, even though the
// registry needs the same "no such operator" zero value.
func (o *DexOperator) IsEmpty() bool {
	return o.OwnerRegID.IsEmpty() && o.MatchRegID.IsEmpty() && o.Name == "" &&
		o.PortalURL == "" && o.MakerFeeRatio == 0 && o.TakerFeeRatio == 0 && o.Memo == ""
}

// SetEmpty resets o to the zero operator.
func (o *DexOperator) SetEmpty() {
	o.OwnerRegID = ""
	o.MatchRegID = ""
	o.Name = ""
	o.PortalURL = ""
	o.MakerFeeRatio = 0
	o.TakerFeeRatio = 0
	o.Memo = ""
}

// ReservedOperator models the reserved dex's implicit operator record: it
// is never written to the registry, but the settlement engine consults it
// as if it were, so that dex_id = 0 needs no special-cased nil-check
// scattered through settle.go the way CDEXSettleBaseTx::CheckTx inlines the
// DEX_RESERVED_ID special case. matchRegID is supplied by configuration
// (the hard-coded system-matcher account).
func ReservedOperator(systemMatcherRegID RegId) *DexOperator {
	return &DexOperator{
		MatchRegID:    systemMatcherRegID,
		MakerFeeRatio: 0,
		TakerFeeRatio: 0,
	}
}

// DealItem is one entry in a settlement transaction: a matched pair of
// active orders with the price and amounts the matcher computed off-chain.
type DealItem struct {
	BuyOrderID      TxId
	SellOrderID     TxId
	DealPrice       uint64
	DealCoinAmount  uint64
	DealAssetAmount uint64
}

func (it *DealItem) Encode(e *Encoder) {
	e.PutTxId(it.BuyOrderID)
	e.PutTxId(it.SellOrderID)
	e.PutVarint(it.DealPrice)
	e.PutVarint(it.DealCoinAmount)
	e.PutVarint(it.DealAssetAmount)
}

func (it *DealItem) Decode(d *Decoder) error {
	var err error
	if it.BuyOrderID, err = d.GetTxId(); err != nil {
		return err
	}
	if it.SellOrderID, err = d.GetTxId(); err != nil {
		return err
	}
	if it.DealPrice, err = d.GetVarint(); err != nil {
		return err
	}
	if it.DealCoinAmount, err = d.GetVarint(); err != nil {
		return err
	}
	if it.DealAssetAmount, err = d.GetVarint(); err != nil {
		return err
	}
	return nil
}

// CalcCoinAmount computes ceil(assetAmount * price / PriceBoost), the
// formula used both to freeze a buy-limit order's coin side and to check
// fill coherence on a deal item.
func CalcCoinAmount(assetAmount, price uint64) uint64 {
	num := assetAmount * price
	return (num + PriceBoost - 1) / PriceBoost
}
