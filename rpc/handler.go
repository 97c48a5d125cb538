package unitifyrpc

import (
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"unitify"
	"unitify/internal/logger"
	unitifymsgpack "unitify/msgpack"
)

var ServerFuncs = []string{
	"Evaluate",
	"Resolve",
	"Convert",
}

const (
	CodeOK         int32 = 0
	CodeNoFunc     int32 = -201
	CodeNoSuchFunc int32 = -202
	CodeNoArg      int32 = -204
	CodeUnmarshall int32 = -205
	CodeExecFunc   int32 = -301
)

var (
	ErrReqHasNoFunc = errors.New("request has no function")
	ErrNoSuchFunc   = errors.New("no such function")
	ErrReqHasNoArg  = errors.New("request has no argument")
)

func StrsContains(strs []string, searchVal string) bool {
	for i := range strs {
		if strs[i] == searchVal {
			return true
		}
	}
	return false
}

// Handler answers request packets. Body["function"] names the call and
// Body["arg"] carries its argument as text.
type Handler struct {
	logger *slog.Logger
}

func NewHandler(l *slog.Logger) *Handler {
	if l == nil {
		l = logger.Discard()
	}
	return &Handler{logger: l}
}

// NewRequest builds a request packet with a fresh ID.
func NewRequest(function, arg string, extra map[string][]byte) *Packet {
	body := map[string][]byte{
		"function": []byte(function),
		"arg":      []byte(arg),
	}
	for k, v := range extra {
		body[k] = v
	}
	return &Packet{ID: uuid.NewString(), Type: TypeReq, Body: body}
}

func (h *Handler) Handle(pkt *Packet) *Packet {
	funcBytes, ok := pkt.Body["function"]
	if !ok {
		return h.respond(pkt.ID, CodeNoFunc, nil, ErrReqHasNoFunc)
	}
	funcStr := string(funcBytes)
	if !StrsContains(ServerFuncs, funcStr) {
		return h.respond(pkt.ID, CodeNoSuchFunc, nil, ErrNoSuchFunc)
	}
	argBytes, argOk := pkt.Body["arg"]
	if !argOk || len(argBytes) == 0 {
		return h.respond(pkt.ID, CodeNoArg, nil, ErrReqHasNoArg)
	}
	arg := string(argBytes)

	payload := map[string][]byte{}
	switch funcStr {
	case "Evaluate":
		m, err := unitify.EvaluateLine(arg)
		if err != nil {
			return h.respond(pkt.ID, CodeExecFunc, nil, err)
		}
		b, err := unitifymsgpack.EncodeMeasurement(m)
		if err != nil {
			return h.respond(pkt.ID, CodeUnmarshall, nil, err)
		}
		payload["measurement"] = b
		payload["text"] = []byte(m.String())
	case "Resolve":
		u, err := unitify.Resolve(arg)
		if err != nil {
			return h.respond(pkt.ID, CodeExecFunc, nil, err)
		}
		b, err := unitifymsgpack.EncodeUnit(u)
		if err != nil {
			return h.respond(pkt.ID, CodeUnmarshall, nil, err)
		}
		payload["unit"] = b
	case "Convert":
		m, err := unitify.ParseMeasurement(arg)
		if err != nil {
			return h.respond(pkt.ID, CodeExecFunc, nil, err)
		}
		to, err := unitify.Resolve(string(pkt.Body["to"]))
		if err != nil {
			return h.respond(pkt.ID, CodeExecFunc, nil, err)
		}
		converted, err := unitify.Convert(m, to)
		if err != nil {
			return h.respond(pkt.ID, CodeExecFunc, nil, err)
		}
		b, err := unitifymsgpack.EncodeMeasurement(converted)
		if err != nil {
			return h.respond(pkt.ID, CodeUnmarshall, nil, err)
		}
		payload["measurement"] = b
		payload["text"] = []byte(converted.String())
	}
	return h.respond(pkt.ID, CodeOK, payload, nil)
}

// HandleStream feeds raw bytes through buf and returns the encoded
// responses for every complete request.
func (h *Handler) HandleStream(buf *PacketBuffer, data []byte) ([]byte, error) {
	pkts, err := buf.Feed(data)
	var out []byte
	for _, pkt := range pkts {
		resp, eerr := EncodePacket(h.Handle(pkt))
		if eerr != nil {
			return out, eerr
		}
		out = append(out, resp...)
	}
	return out, err
}

// Serve answers requests read from rw until it reaches EOF.
func (h *Handler) Serve(rw io.ReadWriter) error {
	var buf PacketBuffer
	chunk := make([]byte, 4096)
	for {
		n, err := rw.Read(chunk)
		if n > 0 {
			out, herr := h.HandleStream(&buf, chunk[:n])
			if len(out) > 0 {
				if _, werr := rw.Write(out); werr != nil {
					return werr
				}
			}
			if herr != nil {
				return herr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (h *Handler) respond(id string, code int32, payload map[string][]byte, err error) *Packet {
	meta := map[string][]byte{"code": []byte(strconv.Itoa(int(code)))}
	if err != nil {
		meta["error"] = []byte(err.Error())
		h.logger.Warn("rpc request failed", "id", id, "code", code, "error", err)
	}
	return &Packet{ID: id, Type: TypeResp, Meta: meta, Body: payload}
}

// ResponseCode reads the code a Handler put in pkt's metadata.
func ResponseCode(pkt *Packet) int32 {
	code, err := strconv.Atoi(string(pkt.Meta["code"]))
	if err != nil {
		return CodeExecFunc
	}
	return int32(code)
}
