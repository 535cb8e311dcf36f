package display

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"
)

func TestHostClock(t *testing.T) {
	mock := clock.NewMock()
	mock.Set(time.Unix(42, 0))

	hc := NewHostClock(mock, SyncApprox)
	test.That(t, hc.Now().Equal(time.Unix(42, 0)), test.ShouldBeTrue)
	test.That(t, hc.SyncMode(), test.ShouldEqual, SyncApprox)

	mock.Add(time.Second)
	test.That(t, hc.Now().Equal(time.Unix(43, 0)), test.ShouldBeTrue)

	hc.SetSyncMode(SyncExact)
	test.That(t, hc.SyncMode(), test.ShouldEqual, SyncExact)
}
