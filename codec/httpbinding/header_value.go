package httpbinding

import (
	"encoding/base64"
	"math/big"
	"net/http"
	"strconv"
)

// HeaderValue encodes a single scalar value onto one HTTP header, either
// overwriting any prior value for the header (SetHeader) or appending a new
// value alongside any existing ones (AddHeader).
type HeaderValue struct {
	header http.Header
	key    string
	append bool
}

func newHeaderValue(header http.Header, key string, appendValue bool) HeaderValue {
	return HeaderValue{header: header, key: key, append: appendValue}
}

func (v HeaderValue) set(s string) {
	if v.append {
		v.header.Add(v.key, s)
	} else {
		v.header.Set(v.key, s)
	}
}

// String sets s as the header value.
func (v HeaderValue) String(s string) { v.set(s) }

// Boolean sets b as the header value.
func (v HeaderValue) Boolean(b bool) { v.set(strconv.FormatBool(b)) }

// Byte sets n as the header value.
func (v HeaderValue) Byte(n int8) { v.Long(int64(n)) }

// Short sets n as the header value.
func (v HeaderValue) Short(n int16) { v.Long(int64(n)) }

// Integer sets n as the header value.
func (v HeaderValue) Integer(n int32) { v.Long(int64(n)) }

// Long sets n as the header value.
func (v HeaderValue) Long(n int64) { v.set(strconv.FormatInt(n, 10)) }

// Float sets f as the header value.
func (v HeaderValue) Float(f float32) { v.set(strconv.FormatFloat(float64(f), 'g', -1, 32)) }

// Double sets f as the header value.
func (v HeaderValue) Double(f float64) { v.set(strconv.FormatFloat(f, 'g', -1, 64)) }

// BigInteger sets n as the header value.
func (v HeaderValue) BigInteger(n big.Int) { v.set(n.String()) }

// BigDecimal sets n as the header value.
func (v HeaderValue) BigDecimal(n big.Float) { v.set(n.Text('g', -1)) }

// Blob base64-encodes b and sets it as the header value.
func (v HeaderValue) Blob(b []byte) { v.set(base64.StdEncoding.EncodeToString(b)) }

// Headers encodes a map member into a group of headers sharing a common
// prefix, one header per map key (relay.api#httpPrefixHeaders).
type Headers struct {
	header http.Header
	prefix string
}

// AddHeader returns a HeaderValue for appending to prefix+suffix.
func (h Headers) AddHeader(suffix string) HeaderValue {
	return newHeaderValue(h.header, h.prefix+suffix, true)
}

// SetHeader returns a HeaderValue for setting prefix+suffix.
func (h Headers) SetHeader(suffix string) HeaderValue {
	return newHeaderValue(h.header, h.prefix+suffix, false)
}
