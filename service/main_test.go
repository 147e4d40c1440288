// service/main_test.go
package service_test

import (
	"os"
	"testing"

	"github.com/vre-platform/portal-bff/config"
	logger "github.com/vre-platform/portal-bff/logging"
)

func TestMain(m *testing.M) {
	_ = config.InitConfig()
	logger.InitLogger(os.TempDir())
	defer logger.Sync()
	os.Exit(m.Run())
}
