package hmacauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"
)

// sum256 returns the SHA-256 digest of v.
func sum256(v string) []byte {
	h := sha256.Sum256([]byte(v))
	return h[:]
}

// sum256Reader returns the SHA-256 digest of the full contents of rs,
// restoring its read position to where it started.
func sum256Reader(rs io.ReadSeeker) ([]byte, error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	h := sha256.New()
	if _, err := io.Copy(h, rs); err != nil {
		return nil, err
	}

	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
