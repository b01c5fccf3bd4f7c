package executor

import (
	log "github.com/33cn/chain33/common/log/log15"
	"github.com/pkg/errors"

	drivers "github.com/33cn/chain33/system/dapp"
	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

var dexlog = log.New("module", "execs.dex")

// systemMatcherRegID is the reserved dex's implicit operator: the chain's
// own system matcher, the only account entitled to settle orders on
// pty.DexReservedID (see pty.ReservedOperator).
const systemMatcherRegID pty.RegId = "system-matcher"

// subConfig is this plugin's deploy-time configuration, loaded the same way
// token/executor/token.go loads its own subConfig: types.MustDecode(sub,
// &cfg) inside Init, from the "dex" stanza of the chain's exec.sub config.
// It backs configRegistry, the concrete AssetRegistry checkOrder's C4
// checks 1-3 consult.
type subConfig struct {
	// WhitelistSymbols is every asset symbol (besides the native coin)
	// order-placing txs may name; a symbol not listed here fails check 1.
	WhitelistSymbols []string `json:"whitelistSymbols"`
	// MaxAmount caps a single order's amount per symbol; 0 (or absent)
	// means unbounded for that symbol.
	MaxAmount map[string]uint64 `json:"maxAmount"`
	// PriceRange caps a limit order's price per "coinSymbol/assetSymbol"
	// pair; 0 on either bound means unbounded on that side.
	PriceRange map[string][2]uint64 `json:"priceRange"`
}

var cfg subConfig

func Init(name string, sub []byte) {
	if sub != nil {
		ctypes.MustDecode(sub, &cfg)
	}
	drivers.Register(GetName(), newDex, ctypes.GetDappFork(pty.DriverName, "Enable"))
}

// configRegistry is the concrete AssetRegistry implementation every
// production checkOrder call consults, backed by the package-level cfg
// Init decodes. Package-level rather than a per-dex value since there is
// exactly one whitelist/range table per chain deployment, not per dex_id.
type configRegistry struct{}

// IsWhitelisted treats an unconfigured (empty) WhitelistSymbols the same
// as "no restriction configured" rather than "nothing is allowed": a fresh
// deployment with no exec.sub["dex"] stanza at all must still be able to
// place orders, matching the permissive default CheckTx/Exec used before
// configRegistry existed.
func (configRegistry) IsWhitelisted(symbol string) bool {
	if len(cfg.WhitelistSymbols) == 0 {
		return true
	}
	for _, s := range cfg.WhitelistSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}

func (configRegistry) MaxAmount(symbol string) uint64 {
	return cfg.MaxAmount[symbol]
}

func (configRegistry) PriceRange(coinSymbol, assetSymbol string) (min, max uint64) {
	r := cfg.PriceRange[coinSymbol+"/"+assetSymbol]
	return r[0], r[1]
}

// assetRegistry returns the registry production checkOrder calls consult,
// backed by the subConfig Init decoded from this dapp's exec.sub stanza.
func (d *dex) assetRegistry() AssetRegistry {
	return configRegistry{}
}

func GetName() string {
	return newDex().GetName()
}

type dex struct {
	drivers.DriverBase
}

func newDex() drivers.Driver {
	d := &dex{}
	d.SetChild(d)
	d.SetExecutorType(ctypes.LoadExecutorType(pty.DriverName))
	return d
}

func (d *dex) GetDriverName() string {
	return pty.DriverName
}

// CheckTx runs the C4 validation gauntlet against every order-placing tx
// before it reaches the mempool/block; CancelOrder and Settle have nothing
// to validate beyond what Exec itself checks, so they fall through to
// DriverBase's default (sender-matches-From) check.
func (d *dex) CheckTx(tx *ctypes.Transaction, index int) error {
	_, body, err := pty.DecodePayload(tx.Payload)
	if err != nil {
		return err
	}
	req, ok := extractOrderRequest(body)
	if !ok {
		return d.DriverBase.CheckTx(tx, index)
	}
	return checkOrder(req, d.GetStateDB(), d.assetRegistry(), systemMatcherRegID, tx)
}

// Exec dispatches a decoded dex payload to the C5/C6 handlers; unlike most
// chain33 dapps this package never goes through DriverBase's reflection
// dispatch (types.ExecutorType.DecodePayloadValue), since the dex wire
// format tags its payload with this package's own leading type byte rather
// than a protobuf oneof DecodePayloadValue could reflect into.
func (d *dex) Exec(tx *ctypes.Transaction, index int) (*ctypes.Receipt, error) {
	_, body, err := pty.DecodePayload(tx.Payload)
	if err != nil {
		return nil, err
	}

	if req, ok := extractOrderRequest(body); ok {
		if err := checkOrder(req, d.GetStateDB(), d.assetRegistry(), systemMatcherRegID, tx); err != nil {
			return nil, err
		}
		return d.placeOrder(tx, index, req)
	}

	switch v := body.(type) {
	case *pty.CancelOrderTx:
		return d.cancelOrder(tx, v.OrderID)
	case *pty.SettleTx:
		return d.settle(tx, v, systemMatcherRegID)
	default:
		return nil, errors.Wrap(ctypes.ErrActionNotSupport, "dex: unrecognized payload tag")
	}
}

func (d *dex) GetActionName(tx *ctypes.Transaction) string {
	return tx.ActionName()
}
