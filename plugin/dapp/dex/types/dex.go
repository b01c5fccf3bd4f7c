package types

import (
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"reflect"
	"time"

	"github.com/33cn/chain33/common/address"
	log "github.com/33cn/chain33/common/log/log15"
	"github.com/33cn/chain33/types"
)

// DexX is the executor name this plugin registers under, matching the
// nameX/TradeX pattern in plugin/dapp/trade/types/trade.go.
const DexX = "dex"

var (
	nameX string
	dlog  = log.New("module", DexX)

	actionName = map[string]int32{
		NameBuyLimitOrder:     TyBuyLimitOrder,
		NameBuyLimitOrderEx:   TyBuyLimitOrderEx,
		NameSellLimitOrder:    TySellLimitOrder,
		NameSellLimitOrderEx:  TySellLimitOrderEx,
		NameBuyMarketOrder:    TyBuyMarketOrder,
		NameBuyMarketOrderEx:  TyBuyMarketOrderEx,
		NameSellMarketOrder:   TySellMarketOrder,
		NameSellMarketOrderEx: TySellMarketOrderEx,
		NameCancelOrder:       TyCancelOrder,
		NameSettle:            TySettle,
	}

	logInfo = map[int64]*types.LogInfo{
		TyLogDexOrderPlaced: {reflect.TypeOf(ReceiptOrderPlaced{}), "LogDexOrderPlaced"},
		TyLogDexOrderCancel: {reflect.TypeOf(ReceiptOrderCancel{}), "LogDexOrderCancel"},
		TyLogDexSettle:      {reflect.TypeOf(ReceiptSettle{}), "LogDexSettle"},
	}
)

func init() {
	nameX = types.ExecName(DexX)
	types.RegistorExecutor(DexX, NewType())

	types.RegistorLog(TyLogDexOrderPlaced, &OrderPlacedLogDecoder{})
	types.RegistorLog(TyLogDexOrderCancel, &OrderCancelLogDecoder{})
	types.RegistorLog(TyLogDexSettle, &SettleLogDecoder{})

	// Query-handle registration (types.RegisterRPCQueryHandle) is deliberately
	// not wired here: that mechanism round-trips through a protobuf
	// types.Message reply, and the state this package stores (ActiveOrder,
	// DexOperator) is plain Go structs encoded with this package's own
	// codec, not protobuf messages. Neither is exposed over RPC by this
	// plugin: rpc/jrpc.go only builds raw txs; see rpc/types.go's doc
	// comment. JSON-RPC/gRPC
	// presentation is an external collaborator's concern (spec.md §1).
}

// dexType is the ExecutorType glue the framework dispatches CreateTx/
// ActionName/Amount/DecodePayload calls through; mirrors tradeType in
// plugin/dapp/trade/types/trade.go. Unlike tradeType it never calls
// types.Decode/types.Encode: the DEX payload is this package's own
// canonical codec, tagged with a single leading type byte (see
// EncodePayload/DecodePayload below) instead of a protobuf oneof.
type dexType struct {
	types.ExecTypeBase
}

// NewType returns the registered ExecutorType singleton.
func NewType() *dexType {
	c := &dexType{}
	c.SetChild(c)
	return c
}

func (t *dexType) GetTypeMap() map[string]int32 {
	return actionName
}

func (t *dexType) GetLogMap() map[int64]*types.LogInfo {
	return logInfo
}

// EncodePayload writes the leading type-tag byte followed by body's own
// encoding, producing the byte string stored in Transaction.Payload.
func EncodePayload(tag byte, body interface{ Encode(*Encoder) }) []byte {
	e := NewEncoder()
	e.PutByte(tag)
	body.Encode(e)
	return e.Bytes()
}

// DecodePayload reads the leading type tag and decodes the matching body,
// returning it as the concrete *XxxTx pointer type.
func DecodePayload(payload []byte) (tag byte, body interface{}, err error) {
	d := NewDecoder(payload)
	tag, err = d.GetByte()
	if err != nil {
		return 0, nil, err
	}
	switch tag {
	case TyBuyLimitOrder:
		v := &BuyLimitTx{}
		err = v.Decode(d)
		body = v
	case TyBuyLimitOrderEx:
		v := &BuyLimitExTx{}
		err = v.Decode(d)
		body = v
	case TySellLimitOrder:
		v := &SellLimitTx{}
		err = v.Decode(d)
		body = v
	case TySellLimitOrderEx:
		v := &SellLimitExTx{}
		err = v.Decode(d)
		body = v
	case TyBuyMarketOrder:
		v := &BuyMarketTx{}
		err = v.Decode(d)
		body = v
	case TyBuyMarketOrderEx:
		v := &BuyMarketExTx{}
		err = v.Decode(d)
		body = v
	case TySellMarketOrder:
		v := &SellMarketTx{}
		err = v.Decode(d)
		body = v
	case TySellMarketOrderEx:
		v := &SellMarketExTx{}
		err = v.Decode(d)
		body = v
	case TyCancelOrder:
		v := &CancelOrderTx{}
		err = v.Decode(d)
		body = v
	case TySettle:
		v := &SettleTx{}
		err = v.Decode(d)
		body = v
	default:
		return tag, nil, &CodecError{Kind: CodecUnknownEnum}
	}
	if err != nil {
		return 0, nil, err
	}
	return tag, body, nil
}

var tagNames = map[byte]string{
	TyBuyLimitOrder:     NameBuyLimitOrder,
	TyBuyLimitOrderEx:   NameBuyLimitOrderEx,
	TySellLimitOrder:    NameSellLimitOrder,
	TySellLimitOrderEx:  NameSellLimitOrderEx,
	TyBuyMarketOrder:    NameBuyMarketOrder,
	TyBuyMarketOrderEx:  NameBuyMarketOrderEx,
	TySellMarketOrder:   NameSellMarketOrder,
	TySellMarketOrderEx: NameSellMarketOrderEx,
	TyCancelOrder:       NameCancelOrder,
	TySettle:            NameSettle,
}

func (t *dexType) ActionName(tx *types.Transaction) string {
	tag, _, err := DecodePayload(tx.GetPayload())
	if err != nil {
		return "unknown-err"
	}
	if n, ok := tagNames[tag]; ok {
		return n
	}
	return "unknown"
}

func (t *dexType) DecodePayload(tx *types.Transaction) (interface{}, error) {
	_, body, err := DecodePayload(tx.GetPayload())
	return body, err
}

// Amount reports the native-coin amount this tx directly moves for
// display purposes. DEX txs move balances between frozen/available
// sub-accounts inside Exec, not as a single native transfer at the
// consensus-visible amount field, so like trade's tradeType.Amount this
// always reports zero; see executor/settle.go and executor/order.go for
// the actual balance moves and their receipts.
func (t *dexType) Amount(tx *types.Transaction) (int64, error) {
	return 0, nil
}

func (t *dexType) CreateTx(action string, message json.RawMessage) (*types.Transaction, error) {
	switch action {
	case NameBuyLimitOrder:
		var req BuyLimitReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawBuyLimitTx(&req)
	case NameSellLimitOrder:
		var req SellLimitReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawSellLimitTx(&req)
	case NameBuyLimitOrderEx:
		var req BuyLimitExReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawBuyLimitExTx(&req)
	case NameSellLimitOrderEx:
		var req SellLimitExReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawSellLimitExTx(&req)
	case NameBuyMarketOrder:
		var req BuyMarketReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawBuyMarketTx(&req)
	case NameSellMarketOrder:
		var req SellMarketReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawSellMarketTx(&req)
	case NameBuyMarketOrderEx:
		var req BuyMarketExReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawBuyMarketExTx(&req)
	case NameSellMarketOrderEx:
		var req SellMarketExReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawSellMarketExTx(&req)
	case NameCancelOrder:
		var req CancelOrderReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawCancelOrderTx(&req)
	case NameSettle:
		var req SettleReq
		if err := json.Unmarshal(message, &req); err != nil {
			dlog.Error("CreateTx", "action", action, "error", err)
			return nil, types.ErrInvalidParam
		}
		return CreateRawSettleTx(&req)
	default:
		return nil, types.ErrNotSupport
	}
}

// --- raw tx construction -----------------------------------------------------
//
// Request structs carry the same fields a CLI or RPC caller supplies in
// minor units; Fee is whatever the caller supplies (the CLI's --fee flag
// defaults to 0). Every CreateRawXxxTx
// builds a *types.Transaction the same way CreateRawTradeXxxTx does in
// plugin/dapp/trade/types/trade.go: Execer/Payload/Fee/Nonce/To, then
// tx.SetRealFee(types.MinFee).

type BuyLimitReq struct {
	CoinSymbol  string `json:"coinSymbol"`
	AssetSymbol string `json:"assetSymbol"`
	AssetAmount uint64 `json:"assetAmount"`
	Price       uint64 `json:"price"`
	Fee         int64  `json:"fee"`
}

func CreateRawBuyLimitTx(req *BuyLimitReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	body := NewBuyLimitTx(req.CoinSymbol, req.AssetSymbol, req.AssetAmount, req.Price)
	return newTx(TyBuyLimitOrder, body, req.Fee)
}

type SellLimitReq struct {
	CoinSymbol  string `json:"coinSymbol"`
	AssetSymbol string `json:"assetSymbol"`
	AssetAmount uint64 `json:"assetAmount"`
	Price       uint64 `json:"price"`
	Fee         int64  `json:"fee"`
}

func CreateRawSellLimitTx(req *SellLimitReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	body := NewSellLimitTx(req.CoinSymbol, req.AssetSymbol, req.AssetAmount, req.Price)
	return newTx(TySellLimitOrder, body, req.Fee)
}

type BuyLimitExReq struct {
	Mode             OperatorMode `json:"mode"`
	DexID            uint32       `json:"dexId"`
	OperatorFeeRatio uint64       `json:"operatorFeeRatio"`
	CoinSymbol       string       `json:"coinSymbol"`
	AssetSymbol      string       `json:"assetSymbol"`
	AssetAmount      uint64       `json:"assetAmount"`
	Price            uint64       `json:"price"`
	Memo             string       `json:"memo"`
	OperatorRegID    string       `json:"operatorRegId"`
	Fee              int64        `json:"fee"`
}

func CreateRawBuyLimitExTx(req *BuyLimitExReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	body := NewBuyLimitExTx(req.Mode, req.DexID, req.OperatorFeeRatio, req.CoinSymbol, req.AssetSymbol,
		req.AssetAmount, req.Price, req.Memo, RegId(req.OperatorRegID))
	return newTx(TyBuyLimitOrderEx, body, req.Fee)
}

type SellLimitExReq struct {
	Mode             OperatorMode `json:"mode"`
	DexID            uint32       `json:"dexId"`
	OperatorFeeRatio uint64       `json:"operatorFeeRatio"`
	CoinSymbol       string       `json:"coinSymbol"`
	AssetSymbol      string       `json:"assetSymbol"`
	AssetAmount      uint64       `json:"assetAmount"`
	Price            uint64       `json:"price"`
	Memo             string       `json:"memo"`
	OperatorRegID    string       `json:"operatorRegId"`
	Fee              int64        `json:"fee"`
}

func CreateRawSellLimitExTx(req *SellLimitExReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	body := NewSellLimitExTx(req.Mode, req.DexID, req.OperatorFeeRatio, req.CoinSymbol, req.AssetSymbol,
		req.AssetAmount, req.Price, req.Memo, RegId(req.OperatorRegID))
	return newTx(TySellLimitOrderEx, body, req.Fee)
}

type BuyMarketReq struct {
	CoinSymbol  string `json:"coinSymbol"`
	AssetSymbol string `json:"assetSymbol"`
	CoinAmount  uint64 `json:"coinAmount"`
	Fee         int64  `json:"fee"`
}

func CreateRawBuyMarketTx(req *BuyMarketReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	body := NewBuyMarketTx(req.CoinSymbol, req.AssetSymbol, req.CoinAmount)
	return newTx(TyBuyMarketOrder, body, req.Fee)
}

type SellMarketReq struct {
	CoinSymbol  string `json:"coinSymbol"`
	AssetSymbol string `json:"assetSymbol"`
	AssetAmount uint64 `json:"assetAmount"`
	Fee         int64  `json:"fee"`
}

func CreateRawSellMarketTx(req *SellMarketReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	body := NewSellMarketTx(req.CoinSymbol, req.AssetSymbol, req.AssetAmount)
	return newTx(TySellMarketOrder, body, req.Fee)
}

type BuyMarketExReq struct {
	Mode             OperatorMode `json:"mode"`
	DexID            uint32       `json:"dexId"`
	OperatorFeeRatio uint64       `json:"operatorFeeRatio"`
	CoinSymbol       string       `json:"coinSymbol"`
	AssetSymbol      string       `json:"assetSymbol"`
	CoinAmount       uint64       `json:"coinAmount"`
	Memo             string       `json:"memo"`
	OperatorRegID    string       `json:"operatorRegId"`
	Fee              int64        `json:"fee"`
}

func CreateRawBuyMarketExTx(req *BuyMarketExReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	body := NewBuyMarketExTx(req.Mode, req.DexID, req.OperatorFeeRatio, req.CoinSymbol, req.AssetSymbol,
		req.CoinAmount, req.Memo, RegId(req.OperatorRegID))
	return newTx(TyBuyMarketOrderEx, body, req.Fee)
}

type SellMarketExReq struct {
	Mode             OperatorMode `json:"mode"`
	DexID            uint32       `json:"dexId"`
	OperatorFeeRatio uint64       `json:"operatorFeeRatio"`
	CoinSymbol       string       `json:"coinSymbol"`
	AssetSymbol      string       `json:"assetSymbol"`
	AssetAmount      uint64       `json:"assetAmount"`
	Memo             string       `json:"memo"`
	OperatorRegID    string       `json:"operatorRegId"`
	Fee              int64        `json:"fee"`
}

func CreateRawSellMarketExTx(req *SellMarketExReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	body := NewSellMarketExTx(req.Mode, req.DexID, req.OperatorFeeRatio, req.CoinSymbol, req.AssetSymbol,
		req.AssetAmount, req.Memo, RegId(req.OperatorRegID))
	return newTx(TySellMarketOrderEx, body, req.Fee)
}

type CancelOrderReq struct {
	OrderID string `json:"orderId"`
	Fee     int64  `json:"fee"`
}

func CreateRawCancelOrderTx(req *CancelOrderReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	id, err := ParseTxId(req.OrderID)
	if err != nil {
		return nil, err
	}
	body := NewCancelOrderTx(id)
	return newTx(TyCancelOrder, body, req.Fee)
}

type DealItemReq struct {
	BuyOrderID      string `json:"buyOrderId"`
	SellOrderID     string `json:"sellOrderId"`
	DealPrice       uint64 `json:"dealPrice"`
	DealCoinAmount  uint64 `json:"dealCoinAmount"`
	DealAssetAmount uint64 `json:"dealAssetAmount"`
}

type SettleReq struct {
	DexID     uint32        `json:"dexId"`
	DealItems []DealItemReq `json:"dealItems"`
	Memo      string        `json:"memo"`
	Fee       int64         `json:"fee"`
}

func CreateRawSettleTx(req *SettleReq) (*types.Transaction, error) {
	if req == nil {
		return nil, types.ErrInvalidParam
	}
	items := make([]DealItem, 0, len(req.DealItems))
	for _, it := range req.DealItems {
		buyID, err := ParseTxId(it.BuyOrderID)
		if err != nil {
			return nil, err
		}
		sellID, err := ParseTxId(it.SellOrderID)
		if err != nil {
			return nil, err
		}
		items = append(items, DealItem{
			BuyOrderID:      buyID,
			SellOrderID:     sellID,
			DealPrice:       it.DealPrice,
			DealCoinAmount:  it.DealCoinAmount,
			DealAssetAmount: it.DealAssetAmount,
		})
	}
	body := NewSettleExTx(req.DexID, items, req.Memo)
	return newTx(TySettle, body, req.Fee)
}

// newTx builds the common *types.Transaction envelope around an encoded
// DEX payload, the same shape CreateRawTradeXxxTx assembles in
// plugin/dapp/trade/types/trade.go.
func newTx(tag byte, body interface{ Encode(*Encoder) }, fee int64) (*types.Transaction, error) {
	tx := &types.Transaction{
		Execer:  []byte(nameX),
		Payload: EncodePayload(tag, body),
		Fee:     fee,
		Nonce:   rand.New(rand.NewSource(time.Now().UnixNano())).Int63(),
		To:      address.ExecAddress(nameX),
	}
	tx.SetRealFee(types.MinFee)
	return tx, nil
}

// ParseTxId decodes a hex-encoded 32-byte order/tx id, the wire form a
// JSON request or CLI flag supplies it in.
func ParseTxId(s string) (TxId, error) {
	var id TxId
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, types.ErrInvalidParam
	}
	if len(b) != len(id) {
		return id, types.ErrInvalidParam
	}
	copy(id[:], b)
	return id, nil
}
