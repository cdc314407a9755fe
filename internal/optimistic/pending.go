package optimistic

import "sync"

// pendingSet tracks temporary entries awaiting their authoritative insert,
// indexed by match key in creation order.
type pendingSet struct {
	mu        sync.Mutex
	byKey     map[string][]string
	keyOf     map[string]string
	confirmed map[string]bool
}

func newPendingSet() *pendingSet {
	return &pendingSet{
		byKey:     make(map[string][]string),
		keyOf:     make(map[string]string),
		confirmed: make(map[string]bool),
	}
}

func (p *pendingSet) add(key, tempID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.byKey[key] = append(p.byKey[key], tempID)
	p.keyOf[tempID] = key
}

// take removes and returns the oldest temporary id registered under key
func (p *pendingSet) take(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	queue := p.byKey[key]
	if len(queue) == 0 {
		return "", false
	}
	tempID := queue[0]
	p.removeLocked(tempID)
	return tempID, true
}

func (p *pendingSet) drop(tempID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(tempID)
}

// confirm marks the remote insert for tempID as acknowledged
func (p *pendingSet) confirm(tempID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.keyOf[tempID]; ok {
		p.confirmed[tempID] = true
	}
}

// inFlight reports whether tempID's remote insert has not completed yet
func (p *pendingSet) inFlight(tempID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.keyOf[tempID]
	return ok && !p.confirmed[tempID]
}

// dropConfirmed forgets every acknowledged entry
func (p *pendingSet) dropConfirmed() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for tempID := range p.confirmed {
		p.removeLocked(tempID)
	}
}

func (p *pendingSet) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keyOf)
}

func (p *pendingSet) removeLocked(tempID string) {
	key, ok := p.keyOf[tempID]
	if !ok {
		return
	}
	delete(p.keyOf, tempID)
	delete(p.confirmed, tempID)

	queue := p.byKey[key]
	for i, id := range queue {
		if id == tempID {
			queue = append(queue[:i:i], queue[i+1:]...)
			break
		}
	}
	if len(queue) == 0 {
		delete(p.byKey, key)
	} else {
		p.byKey[key] = queue
	}
}
