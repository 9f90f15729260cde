package http

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
)

// NewPprofRouter exposes /debug/pprof. Serve it on a separate, internal-only
// address.
func NewPprofRouter() *gin.Engine {
	r := gin.New()
	pprof.Register(r)
	return r
}
