package unitifyrpc

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TypeReq  int16 = 1
	TypeResp int16 = 2
)

// maxPacketLen bounds a single frame so a corrupt length can't make Feed
// buffer forever.
const maxPacketLen = 1 << 20

var ErrPacketTooLarge = errors.New("packet exceeds maximum length")

type Packet struct {
	ID   string            `msgpack:"id,omitempty"`
	Type int16             `msgpack:"type,omitempty"`
	Meta map[string][]byte `msgpack:"h,omitempty"`
	Body map[string][]byte `msgpack:"b,omitempty"`
}

// EncodePacket frames pkt as a little-endian uint32 length followed by its
// msgpack encoding.
func EncodePacket(pkt *Packet) ([]byte, error) {
	body, err := msgpack.Marshal(pkt)
	if err != nil {
		return nil, err
	}
	if len(body) > maxPacketLen {
		return nil, ErrPacketTooLarge
	}
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(body)))
	buf.Write(body)
	return buf.Bytes(), nil
}

// PacketBuffer accumulates stream bytes and yields complete packets.
type PacketBuffer struct {
	buf bytes.Buffer
}

func (pb *PacketBuffer) Feed(data []byte) ([]*Packet, error) {
	pb.buf.Write(data)

	var results []*Packet
	for {
		if pb.buf.Len() < 4 {
			// not enough data yet, stop
			break
		}
		length := binary.LittleEndian.Uint32(pb.buf.Bytes()[:4])
		if length > maxPacketLen {
			pb.buf.Reset()
			return results, ErrPacketTooLarge
		}
		if pb.buf.Len() < int(4+length) {
			break
		}
		pb.buf.Next(4)
		v := new(Packet)
		if err := msgpack.Unmarshal(pb.buf.Next(int(length)), v); err != nil {
			return results, err
		}
		results = append(results, v)
	}
	return results, nil
}
