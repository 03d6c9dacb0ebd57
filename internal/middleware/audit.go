package middleware

import (
	"fmt"

	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/model"
	"github.com/JhonyAlex/GestionPedidosPigmea-sub005/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatedUsernameKey is set by creation handlers so the audit interceptor can
// name the created resource. The request body is already consumed by the time
// the interceptor runs, so the handler passes the value forward explicitly.
const CreatedUsernameKey = "audit_created_username"

// Audit wraps a route with an (action, module) pair and records an audit
// event after the handler runs, but only when it succeeded (2xx). The details
// line is synthesized from the method: creations name what was created,
// mutations and deletions name the :id they touched, and list queries carry
// their filters. Recording is asynchronous and can never delay or change the
// response.
func Audit(recorder *service.AuditRecorder, action, module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		actor := ActorFrom(c)
		if actor == nil {
			return
		}

		ev := model.AuditLog{
			UserID:    actor.ID,
			Username:  actor.Username,
			Action:    action,
			Module:    module,
			Details:   detalles(c, action),
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if id := c.Param("id"); id != "" {
			ev.AffectedResource = &id
		}
		recorder.Record(ev)
	}
}

func detalles(c *gin.Context, action string) string {
	var d string
	switch c.Request.Method {
	case "POST":
		d = fmt.Sprintf("%s por %s", action, ActorFrom(c).Username)
		if created := c.GetString(CreatedUsernameKey); created != "" {
			d = fmt.Sprintf("%s: %s", action, created)
		}
	case "PUT", "PATCH", "DELETE":
		d = action
		if id := c.Param("id"); id != "" {
			d = fmt.Sprintf("%s sobre %s", action, id)
		}
	default:
		d = action
	}
	if q := c.Request.URL.RawQuery; q != "" {
		d += " Filtros: " + q
	}
	return d
}
