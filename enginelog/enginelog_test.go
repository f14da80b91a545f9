package enginelog_test

import (
	"testing"

	logging "github.com/op/go-logging"
	"github.com/climengine/weiqi/enginelog"
)

func TestNewDoesNotPanic(t *testing.T) {
	l := enginelog.New("mcts_test", logging.INFO)
	l.Infof("search started, %d simulations requested", 1000)
	l.Debugf("this is below the configured level and should be dropped")
}

func TestNoopDoesNotPanic(t *testing.T) {
	l := enginelog.Noop()
	l.Warningf("%s", "should not reach stderr under a critical-only level")
}
