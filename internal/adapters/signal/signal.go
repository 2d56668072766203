// Package signal is the websocket transport adapter: it upgrades
// connections, runs the read/write pumps, and hands validated
// sessions to the app controller.
package signal

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkaverin/streamcast/internal/app"
	"github.com/dkaverin/streamcast/internal/core"
	"github.com/dkaverin/streamcast/internal/domain"
)

const missingParamsPayload = `{"error": "Missing required query parameters: room, streamName"}`

type WSController struct {
	App       *app.Controller
	ReadLimit int64
}

func NewWSController(appCtl *app.Controller, readLimit int64) *WSController {
	return &WSController{App: appCtl, ReadLimit: readLimit}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the request and joins the session to its room.
// Both query parameters are required; a connection missing either is
// told so and closed without ever touching the registry.
func (ctl *WSController) Handle(ctx context.Context, c *gin.Context) {
	// One browser can hold several tabs on the same client token, and
	// each is its own room member, so the session ID is minted per
	// connection with the token kept as a prefix for log correlation.
	sid := domain.SessionID(c.GetString("client_token") + ":" + uuid.NewString())
	room := domain.RoomName(c.Query("room"))
	stream := domain.StreamName(c.Query("streamName"))

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(room)).Str("stream", string(stream)).Msg("new WS connection")

	peer, err := domain.NewPeer(sid, room, stream)
	if err != nil {
		ctl.reject(ws)
		return
	}

	conn := newConn(ws)
	sess := core.NewMemberSession(peer, conn, time.Now())

	// Register before the pumps run: the read pump's disconnect path
	// must never observe a session that has yet to join. The joiner's
	// own announcement just queues on the buffered send channel until
	// the write pump drains it.
	ctl.App.Connect(sess)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sess, conn)
}

func (ctl *WSController) reject(ws *websocket.Conn) {
	log.Warn().Str("module", "signal").Msg("rejecting connection without room/streamName")
	_ = ws.SetWriteDeadline(time.Now().Add(5 * time.Second))
	_ = ws.WriteMessage(websocket.TextMessage, []byte(missingParamsPayload))
	_ = ws.Close()
}
