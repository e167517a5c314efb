package web

import (
	"net"
	"net/http"
	"sync"
)

// flashes holds one pending message per client address.
type flashes struct {
	mu       sync.Mutex
	messages map[string]string
}

func newFlashes() *flashes {
	return &flashes{messages: make(map[string]string)}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (f *flashes) set(r *http.Request, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages[clientKey(r)] = message
}

// pop returns the pending message and forgets it.
func (f *flashes) pop(r *http.Request) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := clientKey(r)
	message := f.messages[key]
	delete(f.messages, key)
	return message
}
