package bitpay

// Currency codes accepted by the payment service.
const (
	BTC  = "BTC"
	BCH  = "BCH"
	ETH  = "ETH"
	USDC = "USDC"
	GUSD = "GUSD"
	PAX  = "PAX"
	BUSD = "BUSD"
	XRP  = "XRP"
	DOGE = "DOGE"
	LTC  = "LTC"

	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	JPY = "JPY"
	CAD = "CAD"
	AUD = "AUD"
	CHF = "CHF"
	CNY = "CNY"
	MXN = "MXN"
	ZAR = "ZAR"
)
