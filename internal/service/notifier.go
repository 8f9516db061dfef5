package service

import "sync"

// Notifier fans out the id of every device a command just reached.
// Subscribers that fall behind miss intermediate ids; only the latest
// pending one is kept.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan string]struct{})}
}

// Subscribe registers a listener. The returned func unregisters it and
// must be called once the listener is done.
func (n *Notifier) Subscribe() (<-chan string, func()) {
	ch := make(chan string, 1)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, ch)
			n.mu.Unlock()
		})
	}
}

// Publish never blocks. A nil Notifier drops the update.
func (n *Notifier) Publish(device string) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- device:
		default:
			// replace the stale pending id
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- device:
			default:
			}
		}
	}
}
