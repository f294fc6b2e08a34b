package cache

// lruNode is a node in a doubly-linked LRU list. It stores its key so the
// oldest entry can be deleted from the map.
type lruNode[K comparable, V any] struct {
	key        K
	prev, next *lruNode[K, V]
}

// lruList orders keys by use: head is the most recently used, tail the
// least. It is not safe for concurrent use; Cache guards it.
type lruList[K comparable, V any] struct {
	head, tail *lruNode[K, V]
	len        int
}

// PushFront adds key as the most recently used.
func (l *lruList[K, V]) PushFront(key K) *lruNode[K, V] {
	n := &lruNode[K, V]{key: key}
	l.linkFront(n)
	return n
}

// MoveToFront marks n as the most recently used.
func (l *lruList[K, V]) MoveToFront(n *lruNode[K, V]) {
	if n == nil || n == l.head {
		return
	}
	l.unlink(n)
	l.linkFront(n)
}

// Remove unlinks n.
func (l *lruList[K, V]) Remove(n *lruNode[K, V]) {
	if n != nil {
		l.unlink(n)
	}
}

// RemoveOldest unlinks the tail and returns its key.
func (l *lruList[K, V]) RemoveOldest() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	n := l.tail
	l.unlink(n)
	return n.key, true
}

// Clear empties the list.
func (l *lruList[K, V]) Clear() {
	l.head, l.tail, l.len = nil, nil, 0
}

func (l *lruList[K, V]) linkFront(n *lruNode[K, V]) {
	n.prev = nil
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	if l.tail == nil {
		l.tail = n
	}
	l.len++
}

func (l *lruList[K, V]) unlink(n *lruNode[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
	l.len--
}
