// Package rpc exposes dex's raw-tx construction over JSON-RPC, the same
// split plugin/dapp/trade/rpc uses: channelClient builds the *types.Transaction,
// Jrpc wraps each call and hex-encodes the result for the wire.
//
// This package registers only the JSON-RPC side. plugin/dapp/privacy/rpc/types.go
// additionally registers a gRPC server (pty.RegisterPrivacyServer(s.GRPC(), grpc)),
// but that requires a protobuf-generated RegisterXxxServer function this
// package has no .pb.go for, since dex actions are this package's own codec
// rather than a protobuf service definition (see the Encoder doc
// comment in types/codec.go). plugin/dapp/evm/rpc/type.go skips the same gRPC registration for
// the same reason; dex follows it rather than privacy here.
//
// Every method below is a raw-tx builder, not a query: there is no
// "list my open orders"/"list orders for this pair" RPC, and no
// executor-side Query_Xxx handler or local-db secondary index backs one.
// A caller that needs that today has to scan blocks itself and decode
// ReceiptOrderPlaced/ReceiptOrderCancel/ReceiptSettle (types/log.go).
package rpc

import (
	ctypes "github.com/33cn/chain33/rpc/types"
)

// Jrpc is registered under the executor's own name, so every method below
// answers at "dex.MethodName" (net/rpc's dotted convention), matching
// trade's "trade.CreateRawTradeSellTx".
type Jrpc struct {
	cli *channelClient
}

// channelClient embeds the framework's queue-client glue; dex's raw-tx
// builders never need to reach into the chain through it (each is a pure
// function of its request, see types/dex.go's CreateRawXxxTx), but every
// other dapp's channelClient carries it for the methods that do.
type channelClient struct {
	ctypes.ChannelClient
}

// Init wires this package's JSON-RPC methods into the node's RPC server;
// called by plugin.go through pluginmgr.PluginBase.RPC.
func Init(name string, s ctypes.RPCServer) {
	cli := &channelClient{}
	jrpc := &Jrpc{cli: cli}
	cli.Init(name, s, jrpc, nil)
}
