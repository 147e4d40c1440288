// controller/main_test.go
package controller_test

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vre-platform/portal-bff/config"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/util"
)

func TestMain(m *testing.M) {
	_ = config.InitConfig()
	logger.InitLogger(os.TempDir())
	defer logger.Sync()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// identityMiddleware injects a resolved identity the way the auth
// middleware would.
func identityMiddleware(identity model.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		util.SetIdentity(c, identity)
		c.Next()
	}
}
