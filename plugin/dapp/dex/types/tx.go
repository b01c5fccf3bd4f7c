package types

import (
	"crypto/sha256"

	"github.com/33cn/chain33/common/address"
	"github.com/33cn/chain33/common/crypto"
	"github.com/33cn/chain33/types"
)

// Shared body structs (C1/C2): the wire fields every order-placing tx
// variant carries, factored out because basic buy/sell-limit share one
// layout and the four "Ex" variants all write the same operator block ahead of it.
// Grounded on dextx.h's CDEXBuyLimitOrderTx/CDEXSellLimitOrderTx etc,
// which differ only in order_side and the tx type tag, never in the
// serialized field set.

// LimitOrderBody is the wire body shared by the basic and extended
// buy-limit and sell-limit transactions.
type LimitOrderBody struct {
	CoinSymbol  string
	AssetSymbol string
	AssetAmount uint64
	Price       uint64
}

func (b *LimitOrderBody) encode(e *Encoder) {
	e.PutString(b.CoinSymbol)
	e.PutString(b.AssetSymbol)
	e.PutVarint(b.AssetAmount)
	e.PutVarint(b.Price)
}

func (b *LimitOrderBody) decode(d *Decoder) error {
	var err error
	if b.CoinSymbol, err = d.GetString(); err != nil {
		return err
	}
	if b.AssetSymbol, err = d.GetString(); err != nil {
		return err
	}
	if b.AssetAmount, err = d.GetVarint(); err != nil {
		return err
	}
	if b.Price, err = d.GetVarint(); err != nil {
		return err
	}
	return nil
}

func (b *LimitOrderBody) hash(e *Encoder) {
	e.PutString(b.CoinSymbol)
	e.PutString(b.AssetSymbol)
	e.PutVarint(b.AssetAmount)
	e.PutVarint(b.Price)
}

// MarketBuyBody is the wire body shared by the basic and extended
// buy-market transactions: the buyer commits coin, the matcher decides the
// asset amount it buys.
type MarketBuyBody struct {
	CoinSymbol  string
	AssetSymbol string
	CoinAmount  uint64
}

func (b *MarketBuyBody) encode(e *Encoder) {
	e.PutString(b.CoinSymbol)
	e.PutString(b.AssetSymbol)
	e.PutVarint(b.CoinAmount)
}

func (b *MarketBuyBody) decode(d *Decoder) error {
	var err error
	if b.CoinSymbol, err = d.GetString(); err != nil {
		return err
	}
	if b.AssetSymbol, err = d.GetString(); err != nil {
		return err
	}
	if b.CoinAmount, err = d.GetVarint(); err != nil {
		return err
	}
	return nil
}

// MarketSellBody is the wire body shared by the basic and extended
// sell-market transactions.
type MarketSellBody struct {
	CoinSymbol  string
	AssetSymbol string
	AssetAmount uint64
}

func (b *MarketSellBody) encode(e *Encoder) {
	e.PutString(b.CoinSymbol)
	e.PutString(b.AssetSymbol)
	e.PutVarint(b.AssetAmount)
}

func (b *MarketSellBody) decode(d *Decoder) error {
	var err error
	if b.CoinSymbol, err = d.GetString(); err != nil {
		return err
	}
	if b.AssetSymbol, err = d.GetString(); err != nil {
		return err
	}
	if b.AssetAmount, err = d.GetVarint(); err != nil {
		return err
	}
	return nil
}

// OrderExtra is the operator-authorization block the four extended order
// variants encode ahead of their base body: dual-signature mode, which dex
// the order targets, the fee ratio the user agreed to, a memo, the
// operator's regid (included in the sighash so both signers commit to the
// same fee policy), and the operator's own co-signature over the order's
// ComputeSignatureHash. The co-signature fields are deliberately excluded
// from hash() (and from every ComputeSignatureHash call below) since the
// operator signs that hash before it could possibly include its own
// signature bytes.
type OrderExtra struct {
	Mode             OperatorMode
	DexID            uint32
	OperatorFeeRatio uint64
	Memo             string
	OperatorRegID    RegId
	OperatorSignType int32
	OperatorPubkey   []byte
	OperatorSig      []byte
}

func (x *OrderExtra) encode(e *Encoder) {
	e.PutByte(byte(x.Mode)) // VARINT((uint8_t&)mode) in the source is a no-op for a 0/1 value
	e.PutVarint(uint64(x.DexID))
	e.PutVarint(x.OperatorFeeRatio)
	e.PutString(x.Memo)
	e.PutString(string(x.OperatorRegID))
	e.PutVarint(uint64(x.OperatorSignType))
	e.PutBytes(x.OperatorPubkey)
	e.PutBytes(x.OperatorSig)
}

func (x *OrderExtra) decode(d *Decoder) error {
	b, err := d.GetByte()
	if err != nil {
		return err
	}
	x.Mode = OperatorMode(b)
	dexID, err := d.GetVarint()
	if err != nil {
		return err
	}
	x.DexID = uint32(dexID)
	if x.OperatorFeeRatio, err = d.GetVarint(); err != nil {
		return err
	}
	if x.Memo, err = d.GetString(); err != nil {
		return err
	}
	regid, err := d.GetString()
	if err != nil {
		return err
	}
	x.OperatorRegID = RegId(regid)
	signType, err := d.GetVarint()
	if err != nil {
		return err
	}
	x.OperatorSignType = int32(signType)
	if x.OperatorPubkey, err = d.GetBytes(); err != nil {
		return err
	}
	if x.OperatorSig, err = d.GetBytes(); err != nil {
		return err
	}
	return nil
}

func (x *OrderExtra) hash(e *Encoder) {
	e.PutByte(byte(x.Mode))
	e.PutVarint(uint64(x.DexID))
	e.PutVarint(x.OperatorFeeRatio)
}

// hashPrefix writes the fields every variant's signature hash starts with:
// version, tx type tag, valid height, tx_uid, fee symbol, fees. Shared by
// every ComputeSignatureHash below so the prefix can never drift between
// variants.
func hashPrefix(e *Encoder, version uint32, txType byte, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) {
	e.PutVarint(uint64(version))
	e.PutByte(txType)
	e.PutVarint(validHeight)
	e.PutString(string(txUID))
	e.PutString(feeSymbol)
	e.PutVarint(fees)
}

// doubleSHA256 is the hash function every ComputeSignatureHash applies to
// its preimage, matching the source's CHashWriter/GetHash (SHA256D).
func doubleSHA256(b []byte) TxId {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second
}

// signatureHasher is satisfied by every order-placing tx body's own
// ComputeSignatureHash method; operatorExtraOf returns one alongside the
// body's embedded OrderExtra so the operator's co-signature can be
// attached/verified generically, without a duplicate switch per caller.
type signatureHasher interface {
	ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId
}

// operatorExtraOf locates the OrderExtra block and signature-hash method of
// whichever of the four Ex-variant order bodies v is; ok is false for the
// four basic variants and for CancelOrderTx/SettleTx, none of which carry
// operator authorization at all.
func operatorExtraOf(body interface{}) (extra *OrderExtra, hasher signatureHasher, ok bool) {
	switch v := body.(type) {
	case *BuyLimitExTx:
		return &v.OrderExtra, v, true
	case *SellLimitExTx:
		return &v.OrderExtra, v, true
	case *BuyMarketExTx:
		return &v.OrderExtra, v, true
	case *SellMarketExTx:
		return &v.OrderExtra, v, true
	default:
		return nil, nil, false
	}
}

// VerifyOperatorSignature reports whether sig is a valid signType signature
// by pubkey over msg, and that pubkey's derived address equals expect. This
// is the spec.md C3/check-6 counterpart to types.Transaction.checkSign: the
// placing user's own signature is verified by the framework's normal
// tx.CheckSign before Exec ever runs, but the operator never signs the tx
// envelope itself, only this order's ComputeSignatureHash, so its
// co-signature needs its own verification step.
func VerifyOperatorSignature(msg []byte, signType int32, pubkey, sig []byte, expect RegId) bool {
	c, err := crypto.New(types.GetSignName(DriverName, int(signType)))
	if err != nil {
		return false
	}
	if err := crypto.BasicValidation(c, msg, pubkey, sig); err != nil {
		return false
	}
	return address.PubKeyToAddress(pubkey).String() == string(expect)
}

// AttachOperatorSignature signs tx's order on the operator's behalf and
// writes the co-signature into its OrderExtra, returning an error if tx's
// payload isn't one of the four operator-aware variants. Must be called
// before the placing user signs tx with tx.Sign: it re-encodes tx.Payload,
// which would otherwise invalidate the user's own signature.
func AttachOperatorSignature(tx *types.Transaction, userRegID RegId, signType int32, priv crypto.PrivKey) error {
	tag, body, err := DecodePayload(tx.Payload)
	if err != nil {
		return err
	}
	extra, hasher, ok := operatorExtraOf(body)
	if !ok {
		return &CodecError{Kind: CodecUnknownEnum}
	}
	msg := hasher.ComputeSignatureHash(TxSigVersion, uint64(tx.Expire), userRegID, NativeFeeSymbol, uint64(tx.Fee))
	sig := priv.Sign(msg[:])
	extra.OperatorSignType = signType
	extra.OperatorPubkey = priv.PubKey().Bytes()
	extra.OperatorSig = sig.Bytes()
	tx.Payload = EncodePayload(tag, body.(interface{ Encode(*Encoder) }))
	return nil
}

// --- Buy limit ------------------------------------------------------------

// BuyLimitTx is the basic buy-limit order: places a buy order on the
// reserved dex with no operator involvement.
type BuyLimitTx struct {
	LimitOrderBody
}

// NewBuyLimitTx mirrors CDEXBuyLimitOrderTx's user-facing constructor: it
// always targets the reserved dex in Default mode with a zero fee ratio.
func NewBuyLimitTx(coinSymbol, assetSymbol string, assetAmount, price uint64) *BuyLimitTx {
	return &BuyLimitTx{LimitOrderBody{CoinSymbol: coinSymbol, AssetSymbol: assetSymbol, AssetAmount: assetAmount, Price: price}}
}

func (tx *BuyLimitTx) Encode(e *Encoder) { tx.LimitOrderBody.encode(e) }

func (tx *BuyLimitTx) Decode(d *Decoder) error { return tx.LimitOrderBody.decode(d) }

func (tx *BuyLimitTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TyBuyLimitOrder, validHeight, txUID, feeSymbol, fees)
	tx.LimitOrderBody.hash(e)
	return doubleSHA256(e.Bytes())
}

// --- Sell limit -------------------------------------------------------------

// SellLimitTx is the basic sell-limit order.
type SellLimitTx struct {
	LimitOrderBody
}

func NewSellLimitTx(coinSymbol, assetSymbol string, assetAmount, price uint64) *SellLimitTx {
	return &SellLimitTx{LimitOrderBody{CoinSymbol: coinSymbol, AssetSymbol: assetSymbol, AssetAmount: assetAmount, Price: price}}
}

func (tx *SellLimitTx) Encode(e *Encoder) { tx.LimitOrderBody.encode(e) }

func (tx *SellLimitTx) Decode(d *Decoder) error { return tx.LimitOrderBody.decode(d) }

func (tx *SellLimitTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TySellLimitOrder, validHeight, txUID, feeSymbol, fees)
	tx.LimitOrderBody.hash(e)
	return doubleSHA256(e.Bytes())
}

// --- Buy limit (extended) ---------------------------------------------------

// BuyLimitExTx is the operator-aware buy-limit order.
type BuyLimitExTx struct {
	LimitOrderBody
	OrderExtra
}

// NewBuyLimitExTx builds an operator-routed buy-limit order. memo and
// operatorRegID are passed straight through (unlike the buy-market-ex
// constructor, this variant has no upstream memo/memoIn mixup to
// reproduce).
func NewBuyLimitExTx(mode OperatorMode, dexID uint32, operatorFeeRatio uint64, coinSymbol, assetSymbol string, assetAmount, price uint64, memo string, operatorRegID RegId) *BuyLimitExTx {
	return &BuyLimitExTx{
		LimitOrderBody: LimitOrderBody{CoinSymbol: coinSymbol, AssetSymbol: assetSymbol, AssetAmount: assetAmount, Price: price},
		OrderExtra:     OrderExtra{Mode: mode, DexID: dexID, OperatorFeeRatio: operatorFeeRatio, Memo: memo, OperatorRegID: operatorRegID},
	}
}

func (tx *BuyLimitExTx) Encode(e *Encoder) {
	tx.OrderExtra.encode(e)
	tx.LimitOrderBody.encode(e)
}

func (tx *BuyLimitExTx) Decode(d *Decoder) error {
	if err := tx.OrderExtra.decode(d); err != nil {
		return err
	}
	return tx.LimitOrderBody.decode(d)
}

func (tx *BuyLimitExTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TyBuyLimitOrderEx, validHeight, txUID, feeSymbol, fees)
	tx.OrderExtra.hash(e)
	tx.LimitOrderBody.hash(e)
	e.PutString(tx.Memo)
	e.PutString(string(tx.OperatorRegID))
	return doubleSHA256(e.Bytes())
}

// --- Sell limit (extended) ---------------------------------------------------

// SellLimitExTx is the operator-aware sell-limit order.
type SellLimitExTx struct {
	LimitOrderBody
	OrderExtra
}

func NewSellLimitExTx(mode OperatorMode, dexID uint32, operatorFeeRatio uint64, coinSymbol, assetSymbol string, assetAmount, price uint64, memo string, operatorRegID RegId) *SellLimitExTx {
	return &SellLimitExTx{
		LimitOrderBody: LimitOrderBody{CoinSymbol: coinSymbol, AssetSymbol: assetSymbol, AssetAmount: assetAmount, Price: price},
		OrderExtra:     OrderExtra{Mode: mode, DexID: dexID, OperatorFeeRatio: operatorFeeRatio, Memo: memo, OperatorRegID: operatorRegID},
	}
}

func (tx *SellLimitExTx) Encode(e *Encoder) {
	tx.OrderExtra.encode(e)
	tx.LimitOrderBody.encode(e)
}

func (tx *SellLimitExTx) Decode(d *Decoder) error {
	if err := tx.OrderExtra.decode(d); err != nil {
		return err
	}
	return tx.LimitOrderBody.decode(d)
}

func (tx *SellLimitExTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TySellLimitOrderEx, validHeight, txUID, feeSymbol, fees)
	tx.OrderExtra.hash(e)
	tx.LimitOrderBody.hash(e)
	e.PutString(tx.Memo)
	e.PutString(string(tx.OperatorRegID))
	return doubleSHA256(e.Bytes())
}

// --- Buy market --------------------------------------------------------------

// BuyMarketTx is the basic buy-market order.
type BuyMarketTx struct {
	MarketBuyBody
}

func NewBuyMarketTx(coinSymbol, assetSymbol string, coinAmount uint64) *BuyMarketTx {
	return &BuyMarketTx{MarketBuyBody{CoinSymbol: coinSymbol, AssetSymbol: assetSymbol, CoinAmount: coinAmount}}
}

func (tx *BuyMarketTx) Encode(e *Encoder) { tx.MarketBuyBody.encode(e) }

func (tx *BuyMarketTx) Decode(d *Decoder) error { return tx.MarketBuyBody.decode(d) }

func (tx *BuyMarketTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TyBuyMarketOrder, validHeight, txUID, feeSymbol, fees)
	e.PutString(tx.CoinSymbol)
	e.PutString(tx.AssetSymbol)
	e.PutVarint(tx.CoinAmount)
	return doubleSHA256(e.Bytes())
}

// --- Sell market -------------------------------------------------------------

// SellMarketTx is the basic sell-market order.
type SellMarketTx struct {
	MarketSellBody
}

func NewSellMarketTx(coinSymbol, assetSymbol string, assetAmount uint64) *SellMarketTx {
	return &SellMarketTx{MarketSellBody{CoinSymbol: coinSymbol, AssetSymbol: assetSymbol, AssetAmount: assetAmount}}
}

func (tx *SellMarketTx) Encode(e *Encoder) { tx.MarketSellBody.encode(e) }

func (tx *SellMarketTx) Decode(d *Decoder) error { return tx.MarketSellBody.decode(d) }

func (tx *SellMarketTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TySellMarketOrder, validHeight, txUID, feeSymbol, fees)
	e.PutString(tx.CoinSymbol)
	e.PutString(tx.AssetSymbol)
	e.PutVarint(tx.AssetAmount)
	return doubleSHA256(e.Bytes())
}

// --- Buy market (extended) ----------------------------------------------------

// BuyMarketExTx is the operator-aware buy-market order.
type BuyMarketExTx struct {
	MarketBuyBody
	OrderExtra
}

// NewBuyMarketExTx builds an operator-routed buy-market order.
//
// Deliberately preserved quirk: CDEXBuyMarketOrderExTx's upstream
// constructor forwards a bare "memo" identifier to its base-class
// initializer instead of its own memoIn parameter, so the memo the caller
// supplies is silently discarded and an empty memo is committed to the
// tx (and to its signature hash) instead. Reproduced here rather than
// fixed, per the known-quirks list this codebase preserves; the memo
// argument is accepted (so callers retain the same signature as the other
// three Ex constructors) but is not used.
func NewBuyMarketExTx(mode OperatorMode, dexID uint32, operatorFeeRatio uint64, coinSymbol, assetSymbol string, coinAmount uint64, memo string, operatorRegID RegId) *BuyMarketExTx {
	_ = memo // discarded, see doc comment
	return &BuyMarketExTx{
		MarketBuyBody: MarketBuyBody{CoinSymbol: coinSymbol, AssetSymbol: assetSymbol, CoinAmount: coinAmount},
		OrderExtra:    OrderExtra{Mode: mode, DexID: dexID, OperatorFeeRatio: operatorFeeRatio, Memo: "", OperatorRegID: operatorRegID},
	}
}

func (tx *BuyMarketExTx) Encode(e *Encoder) {
	tx.OrderExtra.encode(e)
	tx.MarketBuyBody.encode(e)
}

func (tx *BuyMarketExTx) Decode(d *Decoder) error {
	if err := tx.OrderExtra.decode(d); err != nil {
		return err
	}
	return tx.MarketBuyBody.decode(d)
}

func (tx *BuyMarketExTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TyBuyMarketOrderEx, validHeight, txUID, feeSymbol, fees)
	tx.OrderExtra.hash(e)
	e.PutString(tx.CoinSymbol)
	e.PutString(tx.AssetSymbol)
	e.PutVarint(tx.CoinAmount)
	e.PutString(tx.Memo)
	e.PutString(string(tx.OperatorRegID))
	return doubleSHA256(e.Bytes())
}

// --- Sell market (extended) ---------------------------------------------------

// SellMarketExTx is the operator-aware sell-market order.
type SellMarketExTx struct {
	MarketSellBody
	OrderExtra
}

func NewSellMarketExTx(mode OperatorMode, dexID uint32, operatorFeeRatio uint64, coinSymbol, assetSymbol string, assetAmount uint64, memo string, operatorRegID RegId) *SellMarketExTx {
	return &SellMarketExTx{
		MarketSellBody: MarketSellBody{CoinSymbol: coinSymbol, AssetSymbol: assetSymbol, AssetAmount: assetAmount},
		OrderExtra:     OrderExtra{Mode: mode, DexID: dexID, OperatorFeeRatio: operatorFeeRatio, Memo: memo, OperatorRegID: operatorRegID},
	}
}

func (tx *SellMarketExTx) Encode(e *Encoder) {
	tx.OrderExtra.encode(e)
	tx.MarketSellBody.encode(e)
}

func (tx *SellMarketExTx) Decode(d *Decoder) error {
	if err := tx.OrderExtra.decode(d); err != nil {
		return err
	}
	return tx.MarketSellBody.decode(d)
}

func (tx *SellMarketExTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TySellMarketOrderEx, validHeight, txUID, feeSymbol, fees)
	tx.OrderExtra.hash(e)
	e.PutString(tx.CoinSymbol)
	e.PutString(tx.AssetSymbol)
	e.PutVarint(tx.AssetAmount)
	e.PutString(tx.Memo)
	e.PutString(string(tx.OperatorRegID))
	return doubleSHA256(e.Bytes())
}

// --- Cancel -------------------------------------------------------------------

// CancelOrderTx cancels a still-open order by id.
type CancelOrderTx struct {
	OrderID TxId
}

func NewCancelOrderTx(orderID TxId) *CancelOrderTx {
	return &CancelOrderTx{OrderID: orderID}
}

func (tx *CancelOrderTx) Encode(e *Encoder) { e.PutTxId(tx.OrderID) }

func (tx *CancelOrderTx) Decode(d *Decoder) error {
	id, err := d.GetTxId()
	if err != nil {
		return err
	}
	tx.OrderID = id
	return nil
}

func (tx *CancelOrderTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TyCancelOrder, validHeight, txUID, feeSymbol, fees)
	e.PutTxId(tx.OrderID)
	return doubleSHA256(e.Bytes())
}

// --- Settle -------------------------------------------------------------------

// SettleTx is the matcher's settlement transaction. The upstream source
// gives CDEXSettleTx (reserved dex, no memo) and CDEXSettleExTx (arbitrary
// dex_id plus memo) the very same tx type tag (DEX_TRADE_SETTLE_TX) and an
// identical sighash body, so rather than carry two Go types that can never
// be told apart on the wire, this package models both as one SettleTx with
// DexID/Memo always present; NewSettleTx (reserved dex, empty memo) and
// NewSettleExTx (arbitrary dex, memo) just supply different field values.
type SettleTx struct {
	DexID     uint32
	DealItems []DealItem
	Memo      string
}

// NewSettleTx builds a reserved-dex settlement with no memo, matching
// CDEXSettleTx's fixed DEX_RESERVED_ID/"" arguments.
func NewSettleTx(dealItems []DealItem) *SettleTx {
	return &SettleTx{DexID: DexReservedID, DealItems: dealItems}
}

// NewSettleExTx builds a settlement for an arbitrary dex with a memo,
// matching CDEXSettleExTx.
func NewSettleExTx(dexID uint32, dealItems []DealItem, memo string) *SettleTx {
	return &SettleTx{DexID: dexID, DealItems: dealItems, Memo: memo}
}

func (tx *SettleTx) Encode(e *Encoder) {
	e.PutVarint(uint64(tx.DexID))
	EncodeVec(e, tx.DealItems, func(e *Encoder, it DealItem) { it.Encode(e) })
	e.PutString(tx.Memo)
}

func (tx *SettleTx) Decode(d *Decoder) error {
	dexID, err := d.GetVarint()
	if err != nil {
		return err
	}
	tx.DexID = uint32(dexID)
	items, err := DecodeVec(d, func(d *Decoder) (DealItem, error) {
		var it DealItem
		err := it.Decode(d)
		return it, err
	})
	if err != nil {
		return err
	}
	tx.DealItems = items
	if tx.Memo, err = d.GetString(); err != nil {
		return err
	}
	return nil
}

// ComputeSignatureHash reproduces a known upstream vulnerability: both
// CDEXSettleTx and CDEXSettleExTx fold only dealItems into the hash,
// leaving dex_id and memo unsigned even though CDEXSettleExTx puts them on
// the wire. A matcher's signed settlement could be replayed unmodified
// against a different dex_id or with a different memo and the signature
// would still verify. Preserved deliberately rather than fixed; callers
// that need the stronger guarantee should validate dex_id out of band
// (e.g. against the dispatching account's authorization) rather than rely
// on this hash to bind it.
func (tx *SettleTx) ComputeSignatureHash(version uint32, validHeight uint64, txUID RegId, feeSymbol string, fees uint64) TxId {
	e := NewEncoder()
	hashPrefix(e, version, TySettle, validHeight, txUID, feeSymbol, fees)
	EncodeVec(e, tx.DealItems, func(e *Encoder, it DealItem) { it.Encode(e) })
	return doubleSHA256(e.Bytes())
}
