package eventstream

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// preludeLen is total_length(4) + headers_length(4) + prelude_crc(4).
const preludeLen = 12

// ContentType is the container media type for the framed byte sequence
// (§6): "application/vnd.amazon.eventstream".
const ContentType = "application/vnd.amazon.eventstream"

// Encode writes one Frame to w using the length-prefixed binary framing:
// total length, headers length, prelude CRC, header block, payload,
// trailing message CRC. Every field is big-endian, matching the AWS
// event-stream wire format this package's framing is grounded on.
func Encode(w io.Writer, f Frame) error {
	headerBytes, err := encodeHeaders(f.Headers)
	if err != nil {
		return err
	}

	totalLen := uint32(preludeLen + len(headerBytes) + len(f.Payload) + 4)

	var prelude bytes.Buffer
	binary.Write(&prelude, binary.BigEndian, totalLen)
	binary.Write(&prelude, binary.BigEndian, uint32(len(headerBytes)))
	preludeCRC := crc32.ChecksumIEEE(prelude.Bytes())
	binary.Write(&prelude, binary.BigEndian, preludeCRC)

	messageCRC := crc32.NewIEEE()
	messageCRC.Write(prelude.Bytes())
	messageCRC.Write(headerBytes)
	messageCRC.Write(f.Payload)

	if _, err := w.Write(prelude.Bytes()); err != nil {
		return err
	}
	if _, err := w.Write(headerBytes); err != nil {
		return err
	}
	if _, err := w.Write(f.Payload); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, messageCRC.Sum32())
}

// Decode reads one Frame from r, validating the prelude and message CRCs.
func Decode(r io.Reader) (Frame, error) {
	var prelude [preludeLen]byte
	if _, err := io.ReadFull(r, prelude[:]); err != nil {
		return Frame{}, err
	}

	totalLen := binary.BigEndian.Uint32(prelude[0:4])
	headersLen := binary.BigEndian.Uint32(prelude[4:8])
	wantPreludeCRC := binary.BigEndian.Uint32(prelude[8:12])

	gotPreludeCRC := crc32.ChecksumIEEE(prelude[0:8])
	if gotPreludeCRC != wantPreludeCRC {
		return Frame{}, fmt.Errorf("eventstream: prelude checksum mismatch")
	}

	if totalLen < preludeLen+4 {
		return Frame{}, fmt.Errorf("eventstream: invalid total length %d", totalLen)
	}
	rest := make([]byte, totalLen-preludeLen)
	if _, err := io.ReadFull(r, rest); err != nil {
		return Frame{}, err
	}

	payloadLen := uint32(len(rest)) - headersLen - 4
	headerBytes := rest[:headersLen]
	payload := rest[headersLen : headersLen+payloadLen]
	wantMessageCRC := binary.BigEndian.Uint32(rest[headersLen+payloadLen:])

	messageCRC := crc32.NewIEEE()
	messageCRC.Write(prelude[:])
	messageCRC.Write(headerBytes)
	messageCRC.Write(payload)
	if messageCRC.Sum32() != wantMessageCRC {
		return Frame{}, fmt.Errorf("eventstream: message checksum mismatch")
	}

	headers, err := decodeHeaders(headerBytes)
	if err != nil {
		return Frame{}, err
	}

	return Frame{Headers: headers, Payload: payload}, nil
}

func encodeHeaders(h Headers) ([]byte, error) {
	var buf bytes.Buffer
	for name, v := range h {
		if len(name) > 255 {
			return nil, fmt.Errorf("eventstream: header name %q too long", name)
		}
		buf.WriteByte(byte(len(name)))
		buf.WriteString(name)
		buf.WriteByte(byte(v.Type))

		switch v.Type {
		case HeaderTypeBool:
			b := v.Value.(bool)
			if b {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		case HeaderTypeByte:
			buf.WriteByte(v.Value.(byte))
		case HeaderTypeInt16:
			binary.Write(&buf, binary.BigEndian, v.Value.(int16))
		case HeaderTypeInt32:
			binary.Write(&buf, binary.BigEndian, v.Value.(int32))
		case HeaderTypeInt64:
			binary.Write(&buf, binary.BigEndian, v.Value.(int64))
		case HeaderTypeByteArray:
			b := v.Value.([]byte)
			binary.Write(&buf, binary.BigEndian, uint16(len(b)))
			buf.Write(b)
		case HeaderTypeString:
			s := v.Value.(string)
			binary.Write(&buf, binary.BigEndian, uint16(len(s)))
			buf.WriteString(s)
		case HeaderTypeTimestamp:
			binary.Write(&buf, binary.BigEndian, v.Value.(int64))
		case HeaderTypeUUID:
			b := v.Value.([16]byte)
			buf.Write(b[:])
		default:
			return nil, fmt.Errorf("eventstream: unknown header value type %d", v.Type)
		}
	}
	return buf.Bytes(), nil
}

func decodeHeaders(b []byte) (Headers, error) {
	headers := Headers{}
	buf := bytes.NewReader(b)
	for buf.Len() > 0 {
		nameLen, err := buf.ReadByte()
		if err != nil {
			return nil, err
		}
		name := make([]byte, nameLen)
		if _, err := io.ReadFull(buf, name); err != nil {
			return nil, err
		}
		typ, err := buf.ReadByte()
		if err != nil {
			return nil, err
		}

		var val HeaderValue
		val.Type = HeaderValueType(typ)
		switch val.Type {
		case HeaderTypeBool:
			bb, err := buf.ReadByte()
			if err != nil {
				return nil, err
			}
			val.Value = bb != 0
		case HeaderTypeByte:
			bb, err := buf.ReadByte()
			if err != nil {
				return nil, err
			}
			val.Value = bb
		case HeaderTypeInt16:
			var v int16
			if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			val.Value = v
		case HeaderTypeInt32:
			var v int32
			if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			val.Value = v
		case HeaderTypeInt64, HeaderTypeTimestamp:
			var v int64
			if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
				return nil, err
			}
			val.Value = v
		case HeaderTypeByteArray:
			var n uint16
			if err := binary.Read(buf, binary.BigEndian, &n); err != nil {
				return nil, err
			}
			b := make([]byte, n)
			if _, err := io.ReadFull(buf, b); err != nil {
				return nil, err
			}
			val.Value = b
		case HeaderTypeString:
			var n uint16
			if err := binary.Read(buf, binary.BigEndian, &n); err != nil {
				return nil, err
			}
			b := make([]byte, n)
			if _, err := io.ReadFull(buf, b); err != nil {
				return nil, err
			}
			val.Value = string(b)
		case HeaderTypeUUID:
			var b [16]byte
			if _, err := io.ReadFull(buf, b[:]); err != nil {
				return nil, err
			}
			val.Value = b
		default:
			return nil, fmt.Errorf("eventstream: unknown header value type %d", val.Type)
		}

		headers[string(name)] = val
	}
	return headers, nil
}
