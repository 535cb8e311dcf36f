// Package video republishes rendered camera frames to in-process subscribers.
// The wire transport that carries frames out of the process is a host concern.
package video

import (
	"image"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	goutils "go.viam.com/utils"
)

// ErrFrameSizeMismatch is when a captured pixel buffer does not match the
// advertised render dimensions, e.g. when the window was resized mid-render.
// Such frames are dropped rather than padded.
var ErrFrameSizeMismatch = errors.New("capture buffer does not match render dimensions")

// A Frame is one rendered image stamped for republishing.
type Frame struct {
	Image     *image.RGBA
	Seq       uint64
	Timestamp time.Time
}

// A Subscriber receives published frames. Subscribers are invoked on their
// own goroutines and must not retain the frame's pixel data past return if
// they cannot afford the copy.
type Subscriber func(Frame)

// Publisher fans rendered frames out to subscribers. It publishes nothing
// until advertised.
type Publisher struct {
	clock  clock.Clock
	logger golog.Logger

	mu        sync.Mutex
	topic     string
	subs      map[int]Subscriber
	nextSubID int

	seq     atomic.Uint64
	dropped atomic.Uint64

	activeBackgroundWorkers sync.WaitGroup
}

// NewPublisher returns a Publisher stamping frames with the given clock.
func NewPublisher(c clock.Clock, logger golog.Logger) *Publisher {
	return &Publisher{
		clock:  c,
		logger: logger,
		subs:   map[int]Subscriber{},
	}
}

// Advertise opens the publisher on the given topic.
func (p *Publisher) Advertise(topic string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topic = topic
}

// Topic returns the advertised topic, or empty if the publisher is shut down.
func (p *Publisher) Topic() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.topic
}

// Shutdown stops publishing and waits for in-flight deliveries.
func (p *Publisher) Shutdown() {
	p.mu.Lock()
	topic := p.topic
	p.topic = ""
	p.mu.Unlock()
	p.activeBackgroundWorkers.Wait()
	if topic != "" {
		p.logger.Debugw("video publisher shut down", "topic", topic, "frames", p.seq.Load())
	}
}

// Subscribe registers a subscriber and returns a func that removes it.
func (p *Publisher) Subscribe(s Subscriber) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextSubID
	p.nextSubID++
	p.subs[id] = s
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Publish wraps a rendered RGBA pixel buffer into a stamped frame and
// delivers it to all subscribers. The buffer length must equal exactly
// width*height*4; mismatched captures are dropped and counted.
func (p *Publisher) Publish(width, height int, rgba []byte) error {
	p.mu.Lock()
	topic := p.topic
	subs := make([]Subscriber, 0, len(p.subs))
	for _, s := range p.subs {
		subs = append(subs, s)
	}
	p.mu.Unlock()

	if topic == "" {
		return nil
	}
	if len(rgba) != width*height*4 {
		p.dropped.Inc()
		return errors.Wrapf(ErrFrameSizeMismatch, "got %d bytes for %dx%d", len(rgba), width, height)
	}

	pix := make([]byte, len(rgba))
	copy(pix, rgba)
	frame := Frame{
		Image: &image.RGBA{
			Pix:    pix,
			Stride: 4 * width,
			Rect:   image.Rect(0, 0, width, height),
		},
		Seq:       p.seq.Inc(),
		Timestamp: p.clock.Now(),
	}

	for _, s := range subs {
		s := s
		p.activeBackgroundWorkers.Add(1)
		goutils.PanicCapturingGo(func() {
			defer p.activeBackgroundWorkers.Done()
			s(frame)
		})
	}
	return nil
}

// Dropped returns how many mismatched-size captures have been discarded.
func (p *Publisher) Dropped() uint64 {
	return p.dropped.Load()
}
