package domain

import "errors"

var (
	// ErrPoolNotFound se devuelve cuando el proveedor no conoce el pool pedido.
	ErrPoolNotFound = errors.New("pool not found")

	// ErrNoCandles se devuelve cuando la ventana pedida no tiene datos horarios.
	ErrNoCandles = errors.New("no candles in window")

	ErrInvalidDecimals   = errors.New("invalid token decimals")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrInvalidRange      = errors.New("invalid price range")
	ErrInvalidPriceToken = errors.New("invalid price token")
)
