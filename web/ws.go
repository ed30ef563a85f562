package web

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"connectfour-local/engine"
)

// Client actions sent by the page.
const (
	clientMove    = "move"
	clientReset   = "reset"
	clientPreview = "preview"
)

type clientMessage struct {
	Action string `json:"action"`
	Column *int   `json:"column"`
}

func (s *Server) handleWS(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	cl, err := s.hub.upgrade(c.Writer, c.Request, sess.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("session", sess.ID).Msg("failed to upgrade connection")
		return
	}
	defer s.hub.remove(sess.ID, cl)

	if err := cl.send(Message{Action: ActionState, Data: sessionResponse(sess, sess.State())}); err != nil {
		return
	}

	for {
		var msg clientMessage
		if err := cl.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Str("session", sess.ID).Msg("websocket read failed")
			}
			return
		}
		if err := s.handleClientMessage(sess, cl, msg); err != nil {
			return
		}
	}
}

// handleClientMessage applies one page action. Engine notifications are
// broadcast by the session's callbacks; only direct replies are sent here.
func (s *Server) handleClientMessage(sess *Session, cl *client, msg clientMessage) error {
	switch msg.Action {
	case clientMove:
		if msg.Column == nil || !validColumn(*msg.Column) {
			return cl.send(Message{Action: ActionError, Data: gin.H{"error": "column must be an integer between 0 and 6"}})
		}
		_, _, err := sess.Move(*msg.Column)
		var invalid *engine.InvalidMoveError
		if errors.As(err, &invalid) {
			return cl.send(Message{Action: ActionInvalidMove, Data: invalidMoveBody(invalid)})
		}
		return nil
	case clientReset:
		sess.Reset()
		return nil
	case clientPreview:
		if msg.Column == nil || !validColumn(*msg.Column) {
			return cl.send(Message{Action: ActionError, Data: gin.H{"error": "column must be an integer between 0 and 6"}})
		}
		row, landed := sess.Preview(*msg.Column)
		return cl.send(Message{Action: ActionPreview, Data: PreviewResponse{Column: *msg.Column, Row: row, OK: landed}})
	case ActionState:
		return cl.send(Message{Action: ActionState, Data: sessionResponse(sess, sess.State())})
	default:
		s.log.Debug().Str("session", sess.ID).Str("action", msg.Action).Msg("unknown action")
		return cl.send(Message{Action: ActionError, Data: gin.H{"error": "unknown action " + msg.Action}})
	}
}
