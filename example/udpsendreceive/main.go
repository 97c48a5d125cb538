package main

import (
	"fmt"
	"log"
	"net"

	"unitify"
	"unitify/internal/logger"
	unitifymsgpack "unitify/msgpack"
	unitifyrpc "unitify/rpc"
)

// ---------------- UDP Transport ----------------

// serveUDP answers every datagram. Each peer gets its own PacketBuffer so
// partial frames from different senders don't mix.
func serveUDP(conn *net.UDPConn, h *unitifyrpc.Handler) {
	buffers := map[string]*unitifyrpc.PacketBuffer{}
	data := make([]byte, 65535)
	for {
		n, addr, err := conn.ReadFromUDP(data)
		if err != nil {
			return
		}
		buf, ok := buffers[addr.String()]
		if !ok {
			buf = &unitifyrpc.PacketBuffer{}
			buffers[addr.String()] = buf
		}
		out, err := h.HandleStream(buf, data[:n])
		if err != nil {
			log.Println("handle:", err)
		}
		if len(out) > 0 {
			if _, err := conn.WriteToUDP(out, addr); err != nil {
				log.Println("write:", err)
			}
		}
	}
}

// ---------------- Demo ----------------

func main() {
	// Example encode/decode roundtrip
	m, err := unitify.EvaluateLine("72 km/hr + 5 m/s")
	if err != nil {
		panic(err)
	}
	b, err := unitifymsgpack.EncodeMeasurement(m)
	if err != nil {
		panic(err)
	}
	m2, err := unitifymsgpack.DecodeMeasurement(b)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Roundtrip Measurement (%d bytes): %s\n", len(b), m2)

	udpreceiver, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0})
	if err != nil {
		panic("can't create udp")
	}
	defer udpreceiver.Close()

	go serveUDP(udpreceiver, unitifyrpc.NewHandler(logger.New(logger.Config{})))

	udpsender, err := net.DialUDP("udp", nil, udpreceiver.LocalAddr().(*net.UDPAddr))
	if err != nil {
		log.Fatal(err.Error())
	}
	defer udpsender.Close()

	client := unitifyrpc.NewClient(udpsender)
	res, err := client.Evaluate("2 kg + 500 g * 2 g")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Evaluate:", res)

	u, err := client.Resolve("g/ml")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Resolve: %s (%s, factor %g)\n", u, u.Kind(), u.Factor())

	conv, err := client.Convert("20 m/s", "km/hr")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Convert:", conv)

	if _, err := client.Evaluate("1 g + 1 m"); err != nil {
		fmt.Println("Remote error:", err)
	}
}
