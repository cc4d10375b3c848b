package telemetry

// Publisher is the fire-and-forget sink the Model publishes events to. It
// must never block the core's event loop.
type Publisher interface {
	Publish(Event)
}

// ChannelPublisher is the reference Publisher: a buffered channel drained by
// a supervised Processor. Once Close has been called, further publishes are
// a contract violation and panic rather than silently dropping events.
// Publish blocks while the buffer is full. It does not detect a processor
// that stopped without Close: publishes then fill the buffer and block.
type ChannelPublisher struct {
	events chan Event
	closed chan struct{}
}

// NewChannelPublisher builds a publisher with the given channel buffer size.
func NewChannelPublisher(buffer int) *ChannelPublisher {
	return &ChannelPublisher{
		events: make(chan Event, buffer),
		closed: make(chan struct{}),
	}
}

// Events returns the read side of the channel, for a Processor to drain.
func (p *ChannelPublisher) Events() <-chan Event { return p.events }

// Publish sends e to the processor. It panics if the sink has been closed:
// publishing after teardown is a contract violation, not a thing to swallow.
func (p *ChannelPublisher) Publish(e Event) {
	select {
	case p.events <- e:
	case <-p.closed:
		panic("telemetry: publish after sink closed")
	}
}

// Close signals no further events will be sent and closes the channel so the
// processor's drain loop terminates.
func (p *ChannelPublisher) Close() {
	select {
	case <-p.closed:
		return
	default:
		close(p.closed)
		close(p.events)
	}
}

// NoopPublisher discards every event. Useful for tests that don't care about
// telemetry.
type NoopPublisher struct{}

func (NoopPublisher) Publish(Event) {}
