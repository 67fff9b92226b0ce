package services

import (
	"os"
	"testing"

	"github.com/jasperjas06/live-sub000/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	os.Exit(m.Run())
}
