package video

import (
	"image"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

type frameRecorder struct {
	mu     sync.Mutex
	frames []Frame
}

func (fr *frameRecorder) record(f Frame) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.frames = append(fr.frames, f)
}

func (fr *frameRecorder) get() []Frame {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	return append([]Frame{}, fr.frames...)
}

func TestPublishBeforeAdvertise(t *testing.T) {
	pub := NewPublisher(clock.NewMock(), golog.NewTestLogger(t))
	rec := &frameRecorder{}
	defer pub.Subscribe(rec.record)()

	test.That(t, pub.Publish(2, 2, make([]byte, 16)), test.ShouldBeNil)
	pub.Shutdown()
	test.That(t, len(rec.get()), test.ShouldEqual, 0)
}

func TestPublishStampsAndSequences(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Unix(100, 0))
	pub := NewPublisher(mock, golog.NewTestLogger(t))
	rec := &frameRecorder{}
	defer pub.Subscribe(rec.record)()

	pub.Advertise("/camview/image")
	test.That(t, pub.Topic(), test.ShouldEqual, "/camview/image")

	test.That(t, pub.Publish(2, 2, make([]byte, 16)), test.ShouldBeNil)
	mock.Add(33 * time.Millisecond)
	test.That(t, pub.Publish(2, 2, make([]byte, 16)), test.ShouldBeNil)

	pub.Shutdown()
	frames := rec.get()
	test.That(t, len(frames), test.ShouldEqual, 2)

	seqs := map[uint64]Frame{}
	for _, f := range frames {
		seqs[f.Seq] = f
	}
	test.That(t, seqs[1].Timestamp.Equal(time.Unix(100, 0)), test.ShouldBeTrue)
	test.That(t, seqs[2].Timestamp.Equal(time.Unix(100, 0).Add(33*time.Millisecond)), test.ShouldBeTrue)
	test.That(t, seqs[1].Image.Rect, test.ShouldResemble, image.Rect(0, 0, 2, 2))
	test.That(t, seqs[1].Image.Stride, test.ShouldEqual, 8)
}

func TestPublishCopiesPixels(t *testing.T) {
	mock := clock.NewMock()
	pub := NewPublisher(mock, golog.NewTestLogger(t))
	rec := &frameRecorder{}
	defer pub.Subscribe(rec.record)()
	pub.Advertise("/camview/image")

	buf := make([]byte, 16)
	buf[0] = 0xAA
	test.That(t, pub.Publish(2, 2, buf), test.ShouldBeNil)
	// the capture buffer is reused by the render target
	buf[0] = 0x00

	pub.Shutdown()
	frames := rec.get()
	test.That(t, len(frames), test.ShouldEqual, 1)
	test.That(t, frames[0].Image.Pix[0], test.ShouldEqual, byte(0xAA))
}

func TestPublishDropsMismatchedCaptures(t *testing.T) {
	pub := NewPublisher(clock.NewMock(), golog.NewTestLogger(t))
	rec := &frameRecorder{}
	defer pub.Subscribe(rec.record)()
	pub.Advertise("/camview/image")

	err := pub.Publish(4, 4, make([]byte, 16))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, errors.Is(err, ErrFrameSizeMismatch), test.ShouldBeTrue)
	test.That(t, pub.Dropped(), test.ShouldEqual, 1)

	// a following exact-size capture goes through
	test.That(t, pub.Publish(4, 4, make([]byte, 64)), test.ShouldBeNil)

	pub.Shutdown()
	frames := rec.get()
	test.That(t, len(frames), test.ShouldEqual, 1)
	test.That(t, frames[0].Seq, test.ShouldEqual, 1)
}

func TestUnsubscribe(t *testing.T) {
	pub := NewPublisher(clock.NewMock(), golog.NewTestLogger(t))
	rec := &frameRecorder{}
	unsub := pub.Subscribe(rec.record)
	pub.Advertise("/camview/image")

	test.That(t, pub.Publish(2, 2, make([]byte, 16)), test.ShouldBeNil)
	unsub()
	test.That(t, pub.Publish(2, 2, make([]byte, 16)), test.ShouldBeNil)

	pub.Shutdown()
	test.That(t, len(rec.get()), test.ShouldEqual, 1)
}

func TestShutdownStopsPublishing(t *testing.T) {
	pub := NewPublisher(clock.NewMock(), golog.NewTestLogger(t))
	rec := &frameRecorder{}
	defer pub.Subscribe(rec.record)()
	pub.Advertise("/camview/image")
	pub.Shutdown()

	test.That(t, pub.Topic(), test.ShouldEqual, "")
	test.That(t, pub.Publish(2, 2, make([]byte, 16)), test.ShouldBeNil)
	test.That(t, len(rec.get()), test.ShouldEqual, 0)
}
