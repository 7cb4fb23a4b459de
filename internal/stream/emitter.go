package stream

import (
	"sync"

	"price-stream-backend/internal/models"
)

// emitter fans events out to any number of listeners per event. Every
// registration returns a removal func so short-lived consumers (an SSE
// request, a test) can detach without leaking.
type emitter struct {
	mu           sync.RWMutex
	nextID       int
	price        map[int]func(models.PriceUpdate)
	kline        map[int]func(models.KlineUpdate)
	connected    map[int]func(models.StreamSource)
	disconnected map[int]func(models.StreamSource)
	streamErr    map[int]func(models.StreamSource, error)
	gaveUp       map[int]func()
}

func newEmitter() *emitter {
	return &emitter{
		price:        make(map[int]func(models.PriceUpdate)),
		kline:        make(map[int]func(models.KlineUpdate)),
		connected:    make(map[int]func(models.StreamSource)),
		disconnected: make(map[int]func(models.StreamSource)),
		streamErr:    make(map[int]func(models.StreamSource, error)),
		gaveUp:       make(map[int]func()),
	}
}

func (e *emitter) add(register func(id int), unregister func(id int)) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	register(id)
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		unregister(id)
		e.mu.Unlock()
	}
}

func (e *emitter) OnPrice(fn func(models.PriceUpdate)) func() {
	return e.add(func(id int) { e.price[id] = fn }, func(id int) { delete(e.price, id) })
}

func (e *emitter) OnKline(fn func(models.KlineUpdate)) func() {
	return e.add(func(id int) { e.kline[id] = fn }, func(id int) { delete(e.kline, id) })
}

func (e *emitter) OnConnected(fn func(models.StreamSource)) func() {
	return e.add(func(id int) { e.connected[id] = fn }, func(id int) { delete(e.connected, id) })
}

func (e *emitter) OnDisconnected(fn func(models.StreamSource)) func() {
	return e.add(func(id int) { e.disconnected[id] = fn }, func(id int) { delete(e.disconnected, id) })
}

func (e *emitter) OnError(fn func(models.StreamSource, error)) func() {
	return e.add(func(id int) { e.streamErr[id] = fn }, func(id int) { delete(e.streamErr, id) })
}

func (e *emitter) OnMaxReconnectAttemptsReached(fn func()) func() {
	return e.add(func(id int) { e.gaveUp[id] = fn }, func(id int) { delete(e.gaveUp, id) })
}

func (e *emitter) emitPrice(u models.PriceUpdate) {
	e.mu.RLock()
	fns := make([]func(models.PriceUpdate), 0, len(e.price))
	for _, fn := range e.price {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()
	for _, fn := range fns {
		fn(u)
	}
}

func (e *emitter) emitKline(u models.KlineUpdate) {
	e.mu.RLock()
	fns := make([]func(models.KlineUpdate), 0, len(e.kline))
	for _, fn := range e.kline {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()
	for _, fn := range fns {
		fn(u)
	}
}

func (e *emitter) emitConnected(src models.StreamSource) {
	e.mu.RLock()
	fns := make([]func(models.StreamSource), 0, len(e.connected))
	for _, fn := range e.connected {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()
	for _, fn := range fns {
		fn(src)
	}
}

func (e *emitter) emitDisconnected(src models.StreamSource) {
	e.mu.RLock()
	fns := make([]func(models.StreamSource), 0, len(e.disconnected))
	for _, fn := range e.disconnected {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()
	for _, fn := range fns {
		fn(src)
	}
}

func (e *emitter) emitError(src models.StreamSource, err error) {
	e.mu.RLock()
	fns := make([]func(models.StreamSource, error), 0, len(e.streamErr))
	for _, fn := range e.streamErr {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()
	for _, fn := range fns {
		fn(src, err)
	}
}

func (e *emitter) emitMaxReconnectAttemptsReached() {
	e.mu.RLock()
	fns := make([]func(), 0, len(e.gaveUp))
	for _, fn := range e.gaveUp {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}
