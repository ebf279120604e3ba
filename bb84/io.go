package bb84

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/alan-christopher/bb84sim/bb84/bitmap"
	"google.golang.org/protobuf/encoding/protowire"
)

// maxFrameBytes bounds a single classical message.
const maxFrameBytes = 1 << 24

// Field numbers of a basis announcement.
const (
	basesField    protowire.Number = 1
	basisLenField protowire.Number = 2
)

// Stats packages together metrics about one run.
type Stats struct {
	KeyBits      int
	BasisMatches int
	SecretBits   int

	MessagesSent     int
	MessagesReceived int
	BytesSent        int
	BytesRead        int
}

// A framer reads and writes basis announcements on the public classical
// channel. The structure of the frame is trivial: payload-length | payload,
// where the payload is in protocol buffer wire format. Frames carry no MAC.
type framer struct {
	rw io.ReadWriter
}

func (f *framer) WriteBases(b Bases, s *Stats) error {
	payload := marshalBases(b)
	if err := binary.Write(f.rw, binary.LittleEndian, int32(len(payload))); err != nil {
		return err
	}
	if _, err := f.rw.Write(payload); err != nil {
		return err
	}
	s.MessagesSent++
	s.BytesSent += 4 + len(payload)
	return nil
}

func (f *framer) ReadBases(s *Stats) (Bases, error) {
	var mLen int32
	if err := binary.Read(f.rw, binary.LittleEndian, &mLen); err != nil {
		return Bases{}, err
	}
	if mLen < 0 || mLen > maxFrameBytes {
		return Bases{}, fmt.Errorf("frame of %d bytes out of range", mLen)
	}
	payload := make([]byte, mLen)
	if _, err := io.ReadFull(f.rw, payload); err != nil {
		return Bases{}, err
	}
	s.MessagesReceived++
	s.BytesRead += 4 + len(payload)
	return unmarshalBases(payload)
}

func marshalBases(b Bases) []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, basesField, protowire.BytesType)
	buf = protowire.AppendBytes(buf, b.d.Data())
	buf = protowire.AppendTag(buf, basisLenField, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(b.Len()))
	return buf
}

func unmarshalBases(buf []byte) (Bases, error) {
	var (
		data []byte
		n    uint64
	)
	for len(buf) > 0 {
		num, typ, l := protowire.ConsumeTag(buf)
		if l < 0 {
			return Bases{}, fmt.Errorf("parsing basis announcement: %w", protowire.ParseError(l))
		}
		buf = buf[l:]
		switch {
		case num == basesField && typ == protowire.BytesType:
			v, l := protowire.ConsumeBytes(buf)
			if l < 0 {
				return Bases{}, fmt.Errorf("parsing bases: %w", protowire.ParseError(l))
			}
			data, buf = v, buf[l:]
		case num == basisLenField && typ == protowire.VarintType:
			v, l := protowire.ConsumeVarint(buf)
			if l < 0 {
				return Bases{}, fmt.Errorf("parsing basis count: %w", protowire.ParseError(l))
			}
			n, buf = v, buf[l:]
		default:
			l := protowire.ConsumeFieldValue(num, typ, buf)
			if l < 0 {
				return Bases{}, fmt.Errorf("skipping field %d: %w", num, protowire.ParseError(l))
			}
			buf = buf[l:]
		}
	}
	if n > maxFrameBytes*8 || bitmap.BytesFor(int(n)) != len(data) {
		return Bases{}, fmt.Errorf("%w: announced %d bases in %d bytes", ErrLengthMismatch, n, len(data))
	}
	return Bases{d: bitmap.NewDense(data, int(n))}, nil
}
