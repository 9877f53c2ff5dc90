package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type commandStatus struct {
	Name     string   `json:"name"`
	Triggers []string `json:"triggers"`
	Uses     int64    `json:"uses"`
}

func (r *Router) indexHandler(c *gin.Context) {
	usage := r.stats.Snapshot()

	cmds := make([]commandStatus, 0)
	for _, cmd := range r.commands.All() {
		cmds = append(cmds, commandStatus{
			Name:     cmd.Name,
			Triggers: cmd.Triggers,
			Uses:     usage[cmd.Name],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"client_connected": r.gatekeeper.IsAvailable(),
		"responses":        r.manager.Get().Responses,
		"commands":         cmds,
	})
}
