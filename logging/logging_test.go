package logging

import (
	"testing"

	"go.uber.org/zap"

	"go.viam.com/test"
)

func TestConstructorsReturnUsableLoggers(t *testing.T) {
	test.That(t, New("choreo-test"), test.ShouldNotBeNil)
	test.That(t, NewDebug("choreo-test-debug"), test.ShouldNotBeNil)
	test.That(t, NewTest(t), test.ShouldNotBeNil)
}

func TestNewZapBuildsFromCallerConfig(t *testing.T) {
	cfg := zap.NewDevelopmentConfig()
	logger, err := NewZap(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logger, test.ShouldNotBeNil)
	logger.Infow("zap logger operational", "ok", true)
}

func TestNewJSONReturnsNamedLogger(t *testing.T) {
	logger, err := NewJSON("choreo-json-test")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logger, test.ShouldNotBeNil)
	logger.Infow("json logger operational", "ok", true)
}
