package unitifyrpc

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"unitify"
	unitifymsgpack "unitify/msgpack"
)

// RemoteError is a failure reported by the server in a response packet.
type RemoteError struct {
	Code    int32
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("rpc code %d: %s", e.Code, e.Message)
}

// Client sends requests over a stream and waits for the matching response.
// Calls are serialized.
type Client struct {
	rw      io.ReadWriter
	buf     PacketBuffer
	pending map[string]*Packet
	mu      sync.Mutex
}

func NewClient(rw io.ReadWriter) *Client {
	return &Client{rw: rw, pending: make(map[string]*Packet)}
}

// Call writes req and blocks until the response with the same ID arrives.
func (c *Client) Call(req *Packet) (*Packet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := EncodePacket(req)
	if err != nil {
		return nil, err
	}
	if _, err := c.rw.Write(data); err != nil {
		return nil, err
	}

	chunk := make([]byte, 4096)
	for {
		if resp, ok := c.pending[req.ID]; ok {
			delete(c.pending, req.ID)
			return resp, nil
		}
		n, err := c.rw.Read(chunk)
		if n > 0 {
			pkts, ferr := c.buf.Feed(chunk[:n])
			for _, p := range pkts {
				c.pending[p.ID] = p
			}
			if ferr != nil {
				return nil, ferr
			}
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
}

func (c *Client) call(function, arg string, extra map[string][]byte) (*Packet, error) {
	resp, err := c.Call(NewRequest(function, arg, extra))
	if err != nil {
		return nil, err
	}
	if code := ResponseCode(resp); code != CodeOK {
		return nil, &RemoteError{Code: code, Message: string(resp.Meta["error"])}
	}
	return resp, nil
}

// Evaluate asks the server to evaluate one expression line.
func (c *Client) Evaluate(expression string) (unitify.Measurement, error) {
	resp, err := c.call("Evaluate", expression, nil)
	if err != nil {
		return unitify.Measurement{}, err
	}
	return unitifymsgpack.DecodeMeasurement(resp.Body["measurement"])
}

func (c *Client) Resolve(name string) (unitify.Unit, error) {
	resp, err := c.call("Resolve", name, nil)
	if err != nil {
		return unitify.Unit{}, err
	}
	return unitifymsgpack.DecodeUnit(resp.Body["unit"])
}

// Convert sends a measurement such as "72 km/hr" and the target unit name.
func (c *Client) Convert(measurement, to string) (unitify.Measurement, error) {
	resp, err := c.call("Convert", measurement, map[string][]byte{"to": []byte(to)})
	if err != nil {
		return unitify.Measurement{}, err
	}
	return unitifymsgpack.DecodeMeasurement(resp.Body["measurement"])
}
