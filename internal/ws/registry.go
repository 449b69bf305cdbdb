package ws

import "sync"

// Registry maps user identity to the live push channel. At most one
// registration per user: re-registering replaces the previous entry. Every
// mutation goes through the single mutex so a close event and a concurrent
// register for the same user cannot interleave.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

func (r *Registry) Register(userID string, c *Client) {
	r.mu.Lock()
	r.clients[userID] = c
	r.mu.Unlock()
}

// Unregister removes the entry holding this client, if any. The close event
// carries only the connection, not the user id, so removal scans by value.
func (r *Registry) Unregister(c *Client) {
	r.mu.Lock()
	for userID, registered := range r.clients {
		if registered == c {
			delete(r.clients, userID)
			break
		}
	}
	r.mu.Unlock()
}

func (r *Registry) Lookup(userID string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients[userID]
}

// Send pushes a frame to the user's channel if one is registered and still
// open. Reports whether the frame was handed to a connection; a miss is not
// an error, delivery is best-effort.
func (r *Registry) Send(userID string, payload []byte) bool {
	c := r.Lookup(userID)
	if c == nil {
		return false
	}
	return c.enqueue(payload)
}
