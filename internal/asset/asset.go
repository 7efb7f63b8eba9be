package asset

// Asset is one tracked coin. Symbol is what the screen shows, RemoteID is the
// key the price provider understands.
type Asset struct {
	Symbol   string `yaml:"symbol"`
	RemoteID string `yaml:"id"`
}

const (
	ProviderBinance   = "binance"
	ProviderCoinGecko = "coingecko"
)

var coinGeckoAssets = []Asset{
	{Symbol: "BTC", RemoteID: "bitcoin"},
	{Symbol: "ETH", RemoteID: "ethereum"},
	{Symbol: "SOL", RemoteID: "solana"},
	{Symbol: "XRP", RemoteID: "ripple"},
	{Symbol: "ADA", RemoteID: "cardano"},
	{Symbol: "DOGE", RemoteID: "dogecoin"},
	{Symbol: "DOT", RemoteID: "polkadot"},
	{Symbol: "LTC", RemoteID: "litecoin"},
}

var binanceAssets = []Asset{
	{Symbol: "BTC", RemoteID: "BTCUSDT"},
	{Symbol: "ETH", RemoteID: "ETHUSDT"},
	{Symbol: "SOL", RemoteID: "SOLUSDT"},
	{Symbol: "XRP", RemoteID: "XRPUSDT"},
	{Symbol: "ADA", RemoteID: "ADAUSDT"},
	{Symbol: "DOGE", RemoteID: "DOGEUSDT"},
	{Symbol: "DOT", RemoteID: "DOTUSDT"},
	{Symbol: "LTC", RemoteID: "LTCUSDT"},
}

// Defaults returns the compiled-in asset list for a provider, in display
// order. Unknown providers get the CoinGecko list.
func Defaults(provider string) []Asset {
	src := coinGeckoAssets
	if provider == ProviderBinance {
		src = binanceAssets
	}
	out := make([]Asset, len(src))
	copy(out, src)
	return out
}
