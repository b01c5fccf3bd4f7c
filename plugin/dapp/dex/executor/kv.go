package executor

import "fmt"

// Key schema (C2/C5 persistence), grounded on plugin/dapp/trade/executor/kv.go's
// mavl- prefix convention and colon-joined composite keys: every key here is
// consensus state (mavl-) every node computes identically. This package
// carries no LODB- secondary indices of its own yet — order lookup by
// owner/trading-pair is a query-layer concern with no Query_Xxx handler
// wired in this tree (see rpc/types.go), so there is nothing for such an
// index to serve.

const (
	orderDetailPrefix = "mavl-dex-order-"
	activeOrderPrefix = "mavl-dex-active-"
	operatorPrefix    = "mavl-dex-operator-"
)

// calcOrderDetailKey addresses the full placed-order record, stored by the
// id of the transaction that placed it.
func calcOrderDetailKey(orderID []byte) []byte {
	return []byte(fmt.Sprintf("%s%x", orderDetailPrefix, orderID))
}

// calcActiveOrderKey addresses the compact, mutable fill-progress index
// entry for an order, the only part settle.go needs to read on the hot path.
func calcActiveOrderKey(orderID []byte) []byte {
	return []byte(fmt.Sprintf("%s%x", activeOrderPrefix, orderID))
}

// calcOperatorKey addresses the registered DexOperator record for a dex id.
func calcOperatorKey(dexID uint32) []byte {
	return []byte(fmt.Sprintf("%s%d", operatorPrefix, dexID))
}
