package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"parley/internal/app"
	"parley/internal/config"
	"parley/internal/core"
	"parley/internal/domain"
)

type roomSummary struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"member_count"`
	Capacity    int           `json:"capacity"`
	CreatedAt   time.Time     `json:"created_at"`
}

func summarize(r *core.Room) roomSummary {
	return roomSummary{
		ID:          r.ID(),
		MemberCount: r.Count(),
		Capacity:    r.Capacity(),
		CreatedAt:   r.CreatedAt(),
	}
}

func handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleRoomList(store *core.RoomStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := store.List()
		out := make([]roomSummary, 0, len(rooms))
		for _, r := range rooms {
			out = append(out, summarize(r))
		}
		c.JSON(http.StatusOK, gin.H{"rooms": out})
	}
}

func handleRoomInfo(store *core.RoomStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		room, ok := store.Get(domain.RoomID(c.Param("id")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}
		members := room.Members()
		infos := make([]app.MemberInfo, 0, len(members))
		for _, m := range members {
			infos = append(infos, app.NewMemberInfo(m))
		}
		c.JSON(http.StatusOK, gin.H{
			"room":    summarize(room),
			"members": infos,
		})
	}
}

func handleWebRTCConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		servers, err := cfg.ICEServers()
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Msg("ice config")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ice configuration invalid"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"iceServers": servers})
	}
}

type debugMember struct {
	app.MemberInfo
	JoinedAt time.Time `json:"joined_at"`
}

// handleDebugState is the development-only snapshot. Member ids and
// join times are visible; connection handles never leave the process.
func handleDebugState(store *core.RoomStore, reg *app.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := store.List()
		out := make([]gin.H, 0, len(rooms))
		for _, r := range rooms {
			members := r.Members()
			infos := make([]debugMember, 0, len(members))
			for _, m := range members {
				infos = append(infos, debugMember{MemberInfo: app.NewMemberInfo(m), JoinedAt: m.JoinedAt})
			}
			out = append(out, gin.H{
				"room":    summarize(r),
				"members": infos,
			})
		}
		c.JSON(http.StatusOK, gin.H{
			"rooms":       out,
			"connections": reg.ConnCount(),
		})
	}
}
