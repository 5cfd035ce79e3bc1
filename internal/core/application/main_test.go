package application_test

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	goleak.VerifyTestMain(m)
}
