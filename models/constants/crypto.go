package constants

type TrackedCrypto struct {
	Symbol  string
	AssetID string
	Pair    string
}

// AssetID is the identifier used by CoinGecko and CoinCap, Pair the
// Binance ticker pair.
func GetTrackedCryptos() []TrackedCrypto {
	var cryptocurrencies []TrackedCrypto
	cryptocurrencies = append(cryptocurrencies, TrackedCrypto{Symbol: "BTC", AssetID: "bitcoin", Pair: "BTCUSDT"})
	cryptocurrencies = append(cryptocurrencies, TrackedCrypto{Symbol: "ETH", AssetID: "ethereum", Pair: "ETHUSDT"})
	cryptocurrencies = append(cryptocurrencies, TrackedCrypto{Symbol: "XRP", AssetID: "ripple", Pair: "XRPUSDT"})

	return cryptocurrencies
}
