package models

type CoinGeckoTrendingResponse struct {
	Coins []CoinGeckoTrendingCoin `json:"coins"`
}

type CoinGeckoTrendingCoin struct {
	Item CoinGeckoCoinItem `json:"item"`
}

type CoinGeckoCoinItem struct {
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank int    `json:"market_cap_rank"`
}
