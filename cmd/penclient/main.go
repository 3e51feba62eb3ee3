// Command penclient forwards pen samples to a SlideInk presenter.
//
// It reads one JSON message per line from stdin, for example
//
//	{"type":"down","id":1,"device":"pen","pressure":0.5,"x":0.25,"y":0.4}
//
// and sends each one over the presenter's /pen websocket. Without -addr the
// presenter is discovered over mDNS.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	remote "SlideInk/internal/net"
)

func main() {
	addr := flag.String("addr", "", "presenter host:port; discovered over mDNS when empty")
	wait := flag.Duration("browse", 3*time.Second, "how long to look for a presenter")
	flag.Parse()

	if *addr == "" {
		found, err := discover(*wait)
		if err != nil {
			log.Fatalf("[CLIENT] %v", err)
		}
		*addr = found
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/pen"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("[CLIENT] Connection to %s failed: %v", u.String(), err)
	}
	defer conn.Close()
	log.Printf("[CLIENT] Connected to %s", u.String())

	scanner := bufio.NewScanner(os.Stdin)
	sent := 0
	for scanner.Scan() {
		var msg remote.Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			log.Printf("[CLIENT] Skipping line %q: %v", scanner.Text(), err)
			continue
		}
		if _, err := msg.Event(); err != nil {
			log.Printf("[CLIENT] Skipping line %q: %v", scanner.Text(), err)
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Fatalf("[CLIENT] Send failed: %v", err)
		}
		sent++
	}
	if err := scanner.Err(); err != nil {
		log.Printf("[CLIENT] Reading stdin: %v", err)
	}

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
	log.Printf("[CLIENT] Sent %d message(s)", sent)
}

func discover(timeout time.Duration) (string, error) {
	var first string
	err := remote.Browse(timeout, func(addr string) {
		if first == "" {
			log.Printf("[CLIENT] Found presenter at %s", addr)
			first = addr
		}
	})
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", fmt.Errorf("no presenter found on the local network within %s", timeout)
	}
	return first, nil
}
