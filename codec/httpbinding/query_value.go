package httpbinding

import (
	"encoding/base64"
	"math/big"
	"net/url"
	"strconv"
)

// QueryValue encodes a single scalar value onto one query string parameter,
// either replacing any prior value (SetQuery) or appending alongside
// existing ones (AddQuery, used for list-valued query parameters).
type QueryValue struct {
	query  url.Values
	key    string
	append bool
}

func newQueryValue(query url.Values, key string, appendValue bool) QueryValue {
	return QueryValue{query: query, key: key, append: appendValue}
}

func (v QueryValue) set(s string) {
	if v.append {
		v.query.Add(v.key, s)
	} else {
		v.query.Set(v.key, s)
	}
}

// String sets s as the query value.
func (v QueryValue) String(s string) { v.set(s) }

// Boolean sets b as the query value.
func (v QueryValue) Boolean(b bool) { v.set(strconv.FormatBool(b)) }

// Byte sets n as the query value.
func (v QueryValue) Byte(n int8) { v.Long(int64(n)) }

// Short sets n as the query value.
func (v QueryValue) Short(n int16) { v.Long(int64(n)) }

// Integer sets n as the query value.
func (v QueryValue) Integer(n int32) { v.Long(int64(n)) }

// Long sets n as the query value.
func (v QueryValue) Long(n int64) { v.set(strconv.FormatInt(n, 10)) }

// Float sets f as the query value.
func (v QueryValue) Float(f float32) { v.set(strconv.FormatFloat(float64(f), 'g', -1, 32)) }

// Double sets f as the query value.
func (v QueryValue) Double(f float64) { v.set(strconv.FormatFloat(f, 'g', -1, 64)) }

// BigInteger sets n as the query value.
func (v QueryValue) BigInteger(n big.Int) { v.set(n.String()) }

// BigDecimal sets n as the query value.
func (v QueryValue) BigDecimal(n big.Float) { v.set(n.Text('g', -1)) }

// Blob base64-encodes b and sets it as the query value.
func (v QueryValue) Blob(b []byte) { v.set(base64.StdEncoding.EncodeToString(b)) }
