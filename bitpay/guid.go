package bitpay

import (
	"math/rand/v2"
	"strconv"
)

// guidSpace bounds invoice guids to [0, 99999999].
const guidSpace = 100000000

// NewGUID returns an advisory idempotency key for an invoice: the decimal
// form of a uniform random integer in [0, 99999999]. Keys are not unique
// and carry no security value; collisions are not detected.
func NewGUID() string {
	return strconv.Itoa(rand.IntN(guidSpace))
}
