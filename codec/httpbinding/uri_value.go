package httpbinding

import (
	"bytes"
	"math/big"
	"net/url"
	"strconv"
	"strings"
)

// URIValue substitutes a single httpLabel placeholder ("{key}" or the
// greedy "{key+}") in both the request's literal path and its
// percent-escaped RawPath.
type URIValue struct {
	path, rawPath *[]byte
	scratch       *[]byte
	key           string
}

func newURIValue(path, rawPath, scratch *[]byte, key string) URIValue {
	return URIValue{path: path, rawPath: rawPath, scratch: scratch, key: key}
}

func (v URIValue) set(s string) error {
	greedy := "{" + v.key + "+}"
	plain := "{" + v.key + "}"

	*v.path = replaceLabel(*v.path, plain, greedy, s)
	*v.rawPath = replaceLabel(*v.rawPath, plain, greedy, escapeLabel(s, *v.scratch))

	return nil
}

// escapeLabel percent-escapes s byte by byte for inclusion in a URI path,
// except '/', which is kept literal for plain and greedy labels alike.
func escapeLabel(s string, scratch []byte) string {
	scratch = scratch[:0]
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '/' {
			scratch = append(scratch, '/')
			continue
		}
		scratch = append(scratch, []byte(url.PathEscape(string(c)))...)
	}
	return string(scratch)
}

func replaceLabel(buf []byte, plain, greedy, value string) []byte {
	if bytes.Contains(buf, []byte(greedy)) {
		return []byte(strings.Replace(string(buf), greedy, value, 1))
	}
	return []byte(strings.Replace(string(buf), plain, value, 1))
}

// String substitutes s for this value's label.
func (v URIValue) String(s string) error { return v.set(s) }

// Boolean substitutes the formatted bool for this value's label.
func (v URIValue) Boolean(b bool) error { return v.set(strconv.FormatBool(b)) }

// Byte substitutes the formatted int for this value's label.
func (v URIValue) Byte(n int8) error { return v.Long(int64(n)) }

// Short substitutes the formatted int for this value's label.
func (v URIValue) Short(n int16) error { return v.Long(int64(n)) }

// Integer substitutes the formatted int for this value's label.
func (v URIValue) Integer(n int32) error { return v.Long(int64(n)) }

// Long substitutes the formatted int for this value's label.
func (v URIValue) Long(n int64) error { return v.set(strconv.FormatInt(n, 10)) }

// Float substitutes the formatted float for this value's label.
func (v URIValue) Float(f float32) error {
	return v.set(strconv.FormatFloat(float64(f), 'g', -1, 32))
}

// Double substitutes the formatted float for this value's label.
func (v URIValue) Double(f float64) error {
	return v.set(strconv.FormatFloat(f, 'g', -1, 64))
}

// BigInteger substitutes the formatted value for this value's label.
func (v URIValue) BigInteger(n big.Int) error { return v.set(n.String()) }

// BigDecimal substitutes the formatted value for this value's label.
func (v URIValue) BigDecimal(n big.Float) error { return v.set(n.Text('g', -1)) }
