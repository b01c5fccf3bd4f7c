package commands

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	jsonrpc "github.com/33cn/chain33/rpc/jsonclient"
	ctypes "github.com/33cn/chain33/types"

	pty "github.com/33cn/chain33-dex/plugin/dapp/dex/types"
)

// DexCmd is the top-level "dex" subcommand tree, the counterpart of
// plugin/dapp/trade/commands/trade.go's TradeCmd: one subcommand per
// CreateRawXxxTx exposed by rpc/jrpc.go.
func DexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dex",
		Short: "Decentralized exchange order management",
		Args:  cobra.MinimumNArgs(1),
	}

	cmd.AddCommand(
		buyLimitCmd(),
		sellLimitCmd(),
		buyLimitExCmd(),
		sellLimitExCmd(),
		buyMarketCmd(),
		sellMarketCmd(),
		buyMarketExCmd(),
		sellMarketExCmd(),
		cancelOrderCmd(),
		settleCmd(),
	)

	return cmd
}

// toFixed scales a decimal nominal amount up by boost, truncating any
// precision finer than the on-chain integer can represent; the same role
// trade/commands' `int64(price * 1e4)` float arithmetic plays, done with
// decimal.Decimal instead so a value like 0.1 doesn't drift under repeated
// multiplication.
func toFixed(nominal float64, boost int64) uint64 {
	return uint64(decimal.NewFromFloat(nominal).Mul(decimal.NewFromInt(boost)).IntPart())
}

func addCoinAssetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("coin", "c", "", "coin symbol, e.g. bty")
	cmd.MarkFlagRequired("coin")
	cmd.Flags().StringP("asset", "a", "", "asset symbol being traded")
	cmd.MarkFlagRequired("asset")
	cmd.Flags().Float64P("fee", "", 0, "transaction fee")
}

func addExFlags(cmd *cobra.Command) {
	cmd.Flags().Uint32P("dex_id", "d", 0, "hosting dex id, 0 for the reserved dex")
	cmd.Flags().Uint32P("mode", "m", 0, "operator mode, 0 default / 1 require-auth")
	cmd.Flags().Float64P("operator_fee_ratio", "", 0, "operator fee ratio override, in percent (require-auth mode only)")
	cmd.Flags().StringP("memo", "", "", "memo")
	cmd.Flags().StringP("operator_regid", "o", "", "hosting operator's registration id")
}

func buyLimitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy_limit",
		Short: "Create a limit buy order",
		Run:   buyLimit,
	}
	addCoinAssetFlags(cmd)
	cmd.Flags().Float64P("amount", "", 0, "asset amount to buy")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().Float64P("price", "p", 0, "limit price, in coin per asset")
	cmd.MarkFlagRequired("price")
	return cmd
}

func buyLimit(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	coin, _ := cmd.Flags().GetString("coin")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetFloat64("amount")
	price, _ := cmd.Flags().GetFloat64("price")
	fee, _ := cmd.Flags().GetFloat64("fee")

	req := &pty.BuyLimitReq{
		CoinSymbol:  coin,
		AssetSymbol: asset,
		AssetAmount: toFixed(amount, ctypes.Coin),
		Price:       toFixed(price, pty.PriceBoost),
		Fee:         int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawBuyLimitTx", req, nil)
	ctx.RunWithoutMarshal()
}

func sellLimitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell_limit",
		Short: "Create a limit sell order",
		Run:   sellLimit,
	}
	addCoinAssetFlags(cmd)
	cmd.Flags().Float64P("amount", "", 0, "asset amount to sell")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().Float64P("price", "p", 0, "limit price, in coin per asset")
	cmd.MarkFlagRequired("price")
	return cmd
}

func sellLimit(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	coin, _ := cmd.Flags().GetString("coin")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetFloat64("amount")
	price, _ := cmd.Flags().GetFloat64("price")
	fee, _ := cmd.Flags().GetFloat64("fee")

	req := &pty.SellLimitReq{
		CoinSymbol:  coin,
		AssetSymbol: asset,
		AssetAmount: toFixed(amount, ctypes.Coin),
		Price:       toFixed(price, pty.PriceBoost),
		Fee:         int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawSellLimitTx", req, nil)
	ctx.RunWithoutMarshal()
}

func buyLimitExCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy_limit_ex",
		Short: "Create a limit buy order hosted by a third-party dex",
		Run:   buyLimitEx,
	}
	addCoinAssetFlags(cmd)
	addExFlags(cmd)
	cmd.Flags().Float64P("amount", "", 0, "asset amount to buy")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().Float64P("price", "p", 0, "limit price, in coin per asset")
	cmd.MarkFlagRequired("price")
	return cmd
}

func buyLimitEx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	coin, _ := cmd.Flags().GetString("coin")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetFloat64("amount")
	price, _ := cmd.Flags().GetFloat64("price")
	fee, _ := cmd.Flags().GetFloat64("fee")
	dexID, _ := cmd.Flags().GetUint32("dex_id")
	mode, _ := cmd.Flags().GetUint32("mode")
	opRatio, _ := cmd.Flags().GetFloat64("operator_fee_ratio")
	memo, _ := cmd.Flags().GetString("memo")
	operatorRegID, _ := cmd.Flags().GetString("operator_regid")

	req := &pty.BuyLimitExReq{
		Mode:             pty.OperatorMode(mode),
		DexID:            dexID,
		OperatorFeeRatio: toFixed(opRatio/100, pty.RatioBoost),
		CoinSymbol:       coin,
		AssetSymbol:      asset,
		AssetAmount:      toFixed(amount, ctypes.Coin),
		Price:            toFixed(price, pty.PriceBoost),
		Memo:             memo,
		OperatorRegID:    operatorRegID,
		Fee:              int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawBuyLimitExTx", req, nil)
	ctx.RunWithoutMarshal()
}

func sellLimitExCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell_limit_ex",
		Short: "Create a limit sell order hosted by a third-party dex",
		Run:   sellLimitEx,
	}
	addCoinAssetFlags(cmd)
	addExFlags(cmd)
	cmd.Flags().Float64P("amount", "", 0, "asset amount to sell")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().Float64P("price", "p", 0, "limit price, in coin per asset")
	cmd.MarkFlagRequired("price")
	return cmd
}

func sellLimitEx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	coin, _ := cmd.Flags().GetString("coin")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetFloat64("amount")
	price, _ := cmd.Flags().GetFloat64("price")
	fee, _ := cmd.Flags().GetFloat64("fee")
	dexID, _ := cmd.Flags().GetUint32("dex_id")
	mode, _ := cmd.Flags().GetUint32("mode")
	opRatio, _ := cmd.Flags().GetFloat64("operator_fee_ratio")
	memo, _ := cmd.Flags().GetString("memo")
	operatorRegID, _ := cmd.Flags().GetString("operator_regid")

	req := &pty.SellLimitExReq{
		Mode:             pty.OperatorMode(mode),
		DexID:            dexID,
		OperatorFeeRatio: toFixed(opRatio/100, pty.RatioBoost),
		CoinSymbol:       coin,
		AssetSymbol:      asset,
		AssetAmount:      toFixed(amount, ctypes.Coin),
		Price:            toFixed(price, pty.PriceBoost),
		Memo:             memo,
		OperatorRegID:    operatorRegID,
		Fee:              int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawSellLimitExTx", req, nil)
	ctx.RunWithoutMarshal()
}

func buyMarketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy_market",
		Short: "Create a market buy order",
		Run:   buyMarket,
	}
	addCoinAssetFlags(cmd)
	cmd.Flags().Float64P("amount", "", 0, "coin amount to spend")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func buyMarket(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	coin, _ := cmd.Flags().GetString("coin")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetFloat64("amount")
	fee, _ := cmd.Flags().GetFloat64("fee")

	req := &pty.BuyMarketReq{
		CoinSymbol:  coin,
		AssetSymbol: asset,
		CoinAmount:  toFixed(amount, ctypes.Coin),
		Fee:         int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawBuyMarketTx", req, nil)
	ctx.RunWithoutMarshal()
}

func sellMarketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell_market",
		Short: "Create a market sell order",
		Run:   sellMarket,
	}
	addCoinAssetFlags(cmd)
	cmd.Flags().Float64P("amount", "", 0, "asset amount to sell")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func sellMarket(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	coin, _ := cmd.Flags().GetString("coin")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetFloat64("amount")
	fee, _ := cmd.Flags().GetFloat64("fee")

	req := &pty.SellMarketReq{
		CoinSymbol:  coin,
		AssetSymbol: asset,
		AssetAmount: toFixed(amount, ctypes.Coin),
		Fee:         int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawSellMarketTx", req, nil)
	ctx.RunWithoutMarshal()
}

func buyMarketExCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy_market_ex",
		Short: "Create a market buy order hosted by a third-party dex",
		Run:   buyMarketEx,
	}
	addCoinAssetFlags(cmd)
	addExFlags(cmd)
	cmd.Flags().Float64P("amount", "", 0, "coin amount to spend")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func buyMarketEx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	coin, _ := cmd.Flags().GetString("coin")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetFloat64("amount")
	fee, _ := cmd.Flags().GetFloat64("fee")
	dexID, _ := cmd.Flags().GetUint32("dex_id")
	mode, _ := cmd.Flags().GetUint32("mode")
	opRatio, _ := cmd.Flags().GetFloat64("operator_fee_ratio")
	memo, _ := cmd.Flags().GetString("memo")
	operatorRegID, _ := cmd.Flags().GetString("operator_regid")

	req := &pty.BuyMarketExReq{
		Mode:             pty.OperatorMode(mode),
		DexID:            dexID,
		OperatorFeeRatio: toFixed(opRatio/100, pty.RatioBoost),
		CoinSymbol:       coin,
		AssetSymbol:      asset,
		CoinAmount:       toFixed(amount, ctypes.Coin),
		Memo:             memo,
		OperatorRegID:    operatorRegID,
		Fee:              int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawBuyMarketExTx", req, nil)
	ctx.RunWithoutMarshal()
}

func sellMarketExCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell_market_ex",
		Short: "Create a market sell order hosted by a third-party dex",
		Run:   sellMarketEx,
	}
	addCoinAssetFlags(cmd)
	addExFlags(cmd)
	cmd.Flags().Float64P("amount", "", 0, "asset amount to sell")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func sellMarketEx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	coin, _ := cmd.Flags().GetString("coin")
	asset, _ := cmd.Flags().GetString("asset")
	amount, _ := cmd.Flags().GetFloat64("amount")
	fee, _ := cmd.Flags().GetFloat64("fee")
	dexID, _ := cmd.Flags().GetUint32("dex_id")
	mode, _ := cmd.Flags().GetUint32("mode")
	opRatio, _ := cmd.Flags().GetFloat64("operator_fee_ratio")
	memo, _ := cmd.Flags().GetString("memo")
	operatorRegID, _ := cmd.Flags().GetString("operator_regid")

	req := &pty.SellMarketExReq{
		Mode:             pty.OperatorMode(mode),
		DexID:            dexID,
		OperatorFeeRatio: toFixed(opRatio/100, pty.RatioBoost),
		CoinSymbol:       coin,
		AssetSymbol:      asset,
		AssetAmount:      toFixed(amount, ctypes.Coin),
		Memo:             memo,
		OperatorRegID:    operatorRegID,
		Fee:              int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawSellMarketExTx", req, nil)
	ctx.RunWithoutMarshal()
}

func cancelOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a placed order",
		Run:   cancelOrder,
	}
	cmd.Flags().StringP("order_id", "i", "", "order id, the hex tx hash it was placed under")
	cmd.MarkFlagRequired("order_id")
	cmd.Flags().Float64P("fee", "", 0, "transaction fee")
	return cmd
}

func cancelOrder(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	orderID, _ := cmd.Flags().GetString("order_id")
	fee, _ := cmd.Flags().GetFloat64("fee")

	req := &pty.CancelOrderReq{
		OrderID: orderID,
		Fee:     int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawCancelOrderTx", req, nil)
	ctx.RunWithoutMarshal()
}

// settleCmd is a matcher-only operation: only the operator record's
// match_regid can get this tx accepted (see executor/settle.go), but nothing
// stops a caller from assembling it over the CLI the way any other raw tx is
// built, signed and broadcast out of band.
func settleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Create a settlement transaction for one matched deal (matcher use only)",
		Run:   settle,
	}
	cmd.Flags().Uint32P("dex_id", "d", 0, "hosting dex id, 0 for the reserved dex")
	cmd.Flags().StringP("buy_order_id", "b", "", "buy order id")
	cmd.MarkFlagRequired("buy_order_id")
	cmd.Flags().StringP("sell_order_id", "s", "", "sell order id")
	cmd.MarkFlagRequired("sell_order_id")
	cmd.Flags().Float64P("deal_price", "p", 0, "deal price")
	cmd.MarkFlagRequired("deal_price")
	cmd.Flags().Float64P("deal_coin_amount", "", 0, "deal coin amount")
	cmd.MarkFlagRequired("deal_coin_amount")
	cmd.Flags().Float64P("deal_asset_amount", "", 0, "deal asset amount")
	cmd.MarkFlagRequired("deal_asset_amount")
	cmd.Flags().StringP("memo", "", "", "memo")
	cmd.Flags().Float64P("fee", "", 0, "transaction fee")
	return cmd
}

func settle(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	dexID, _ := cmd.Flags().GetUint32("dex_id")
	buyOrderID, _ := cmd.Flags().GetString("buy_order_id")
	sellOrderID, _ := cmd.Flags().GetString("sell_order_id")
	dealPrice, _ := cmd.Flags().GetFloat64("deal_price")
	dealCoin, _ := cmd.Flags().GetFloat64("deal_coin_amount")
	dealAsset, _ := cmd.Flags().GetFloat64("deal_asset_amount")
	memo, _ := cmd.Flags().GetString("memo")
	fee, _ := cmd.Flags().GetFloat64("fee")

	req := &pty.SettleReq{
		DexID: dexID,
		DealItems: []pty.DealItemReq{{
			BuyOrderID:      buyOrderID,
			SellOrderID:     sellOrderID,
			DealPrice:       toFixed(dealPrice, pty.PriceBoost),
			DealCoinAmount:  toFixed(dealCoin, ctypes.Coin),
			DealAssetAmount: toFixed(dealAsset, ctypes.Coin),
		}},
		Memo: memo,
		Fee:  int64(toFixed(fee, ctypes.Coin)),
	}
	ctx := jsonrpc.NewRpcCtx(rpcLaddr, "dex.CreateRawSettleTx", req, nil)
	ctx.RunWithoutMarshal()
}
