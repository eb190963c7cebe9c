package subgraph

import "encoding/json"

// DTOs raw del subgraph. Solo se usan dentro de este paquete.
// The Graph serializa BigInt/BigDecimal como strings; la conversión a tipos
// numéricos se hace en mapping.go y en ningún otro sitio.

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// --- pools ---

type poolsResponse struct {
	Pools []rawPool `json:"pools"`
}

type rawPool struct {
	ID                     string   `json:"id"`
	FeeTier                string   `json:"feeTier"`
	TotalValueLockedUSD    string   `json:"totalValueLockedUSD"`
	TotalValueLockedToken0 string   `json:"totalValueLockedToken0"`
	TotalValueLockedToken1 string   `json:"totalValueLockedToken1"`
	Token0                 rawToken `json:"token0"`
	Token1                 rawToken `json:"token1"`
}

type rawToken struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals string `json:"decimals"`
}

// --- poolHourDatas ---

type poolHourDatasResponse struct {
	PoolHourDatas []rawHourData `json:"poolHourDatas"`
}

type rawHourData struct {
	PeriodStartUnix      int64   `json:"periodStartUnix"`
	Liquidity            string  `json:"liquidity"`
	High                 string  `json:"high"`
	Low                  string  `json:"low"`
	Close                string  `json:"close"`
	FeeGrowthGlobal0X128 string  `json:"feeGrowthGlobal0X128"`
	FeeGrowthGlobal1X128 string  `json:"feeGrowthGlobal1X128"`
	Pool                 rawPool `json:"pool"`
}
