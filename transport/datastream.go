package transport

import (
	"bytes"
	"io"
	"os"
)

// DataStream is a lazy sequence of byte buffers with an optional known
// content length and media type (§3). It wraps the various byte sources an
// HTTP body or event-stream payload can come from: nothing, an in-memory
// buffer, a file, or a subscriber pushed bytes from the network. Memory-
// and file-backed streams are replayable (Seek back to the start for a
// retry); a subscriber-backed stream is single-shot.
type DataStream struct {
	reader     io.Reader
	length     int64 // -1 when unknown
	mediaType  string
	replayable bool
	seek       func() error
}

// NewEmptyDataStream returns a zero-length, replayable stream.
func NewEmptyDataStream() DataStream {
	return DataStream{reader: bytes.NewReader(nil), length: 0, replayable: true, seek: func() error { return nil }}
}

// NewBytesDataStream returns a replayable stream backed by an in-memory
// buffer.
func NewBytesDataStream(b []byte, mediaType string) DataStream {
	r := bytes.NewReader(b)
	return DataStream{
		reader:     r,
		length:     int64(len(b)),
		mediaType:  mediaType,
		replayable: true,
		seek:       func() error { _, err := r.Seek(0, io.SeekStart); return err },
	}
}

// NewFileDataStream returns a replayable stream backed by an open file.
// The known length is taken from Stat; callers that already know the
// length may prefer NewSubscriberDataStream with a *os.File reader to skip
// the stat call.
func NewFileDataStream(f *os.File, mediaType string) (DataStream, error) {
	info, err := f.Stat()
	if err != nil {
		return DataStream{}, err
	}
	return DataStream{
		reader:     f,
		length:     info.Size(),
		mediaType:  mediaType,
		replayable: true,
		seek:       func() error { _, err := f.Seek(0, io.SeekStart); return err },
	}, nil
}

// NewSubscriberDataStream returns a single-shot stream backed by an
// arbitrary io.Reader (typically a network connection). length is -1 if
// unknown. A subscriber stream is not replayable: RewindStream always
// fails.
func NewSubscriberDataStream(r io.Reader, length int64, mediaType string) DataStream {
	return DataStream{reader: r, length: length, mediaType: mediaType, replayable: false}
}

// Reader returns the underlying byte source. Repeated calls return the
// same reader; callers that need to retry a request must call
// RewindStream between reads.
func (d DataStream) Reader() io.Reader { return d.reader }

// Len returns the known content length, or -1 if it is not known ahead of
// time (e.g. a chunked subscriber stream).
func (d DataStream) Len() int64 { return d.length }

// MediaType returns the stream's declared content type, or "" if unset.
func (d DataStream) MediaType() string { return d.mediaType }

// Replayable reports whether RewindStream can succeed.
func (d DataStream) Replayable() bool { return d.replayable }

// RewindStream seeks the stream back to its start, for retrying a request
// whose body it backs. Fails on a non-replayable (subscriber) stream.
func (d DataStream) RewindStream() error {
	if !d.replayable || d.seek == nil {
		return errNotReplayable
	}
	return d.seek()
}

var errNotReplayable = dataStreamError("transport: data stream is not replayable")

type dataStreamError string

func (e dataStreamError) Error() string { return string(e) }
