package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"connectfour-local/board"
	"connectfour-local/engine"
	"connectfour-local/types"
)

// MoveRequest is the body of POST /api/sessions/:id/moves.
type MoveRequest struct {
	Column *int `json:"column" binding:"required"`
}

// SessionResponse describes a session and its game.
type SessionResponse struct {
	ID      string            `json:"id"`
	Players [2]string         `json:"players"`
	State   *types.BoardState `json:"state"`
	Message string            `json:"message,omitempty"`
}

// MoveResponse is returned for an accepted move.
type MoveResponse struct {
	Outcome types.MoveOutcome `json:"outcome"`
	State   *types.BoardState `json:"state"`
}

// PreviewResponse answers a hover preview.
type PreviewResponse struct {
	Column int  `json:"column"`
	Row    int  `json:"row"`
	OK     bool `json:"ok"`
}

func sessionResponse(sess *Session, state *types.BoardState) SessionResponse {
	names := sess.Names()
	return SessionResponse{
		ID:      sess.ID,
		Players: [2]string{names.Name(types.Player1), names.Name(types.Player2)},
		State:   state,
		Message: state.Phase.Message(),
	}
}

func invalidMoveBody(e *engine.InvalidMoveError) gin.H {
	return gin.H{"column": e.Column, "reason": e.Reason}
}

// validColumn reports whether column is on the board.
func validColumn(column int) bool {
	return column >= 0 && column < board.Width
}

func (s *Server) session(c *gin.Context) (*Session, bool) {
	sess, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return sess, true
}

func (s *Server) createSession(c *gin.Context) {
	sess := s.store.Create(s.newEngine)
	s.log.Info().Str("session", sess.ID).Msg("session created")
	c.JSON(http.StatusCreated, sessionResponse(sess, sess.State()))
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionResponse(sess, sess.State()))
}

func (s *Server) deleteSession(c *gin.Context) {
	id := c.Param("id")
	if !s.store.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	s.hub.CloseSession(id)
	s.log.Info().Str("session", id).Msg("session deleted")
	c.Status(http.StatusNoContent)
}

func (s *Server) preview(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	column, err := strconv.Atoi(c.Param("column"))
	if err != nil || !validColumn(column) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column must be an integer between 0 and 6"})
		return
	}
	row, landed := sess.Preview(column)
	c.JSON(http.StatusOK, PreviewResponse{Column: column, Row: row, OK: landed})
}

func (s *Server) move(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Column == nil || !validColumn(*req.Column) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column must be an integer between 0 and 6"})
		return
	}

	outcome, state, err := sess.Move(*req.Column)
	if err != nil {
		var invalid *engine.InvalidMoveError
		if errors.As(err, &invalid) {
			body := invalidMoveBody(invalid)
			s.hub.Broadcast(sess.ID, ActionInvalidMove, body)
			body["error"] = err.Error()
			c.JSON(http.StatusConflict, body)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, MoveResponse{Outcome: outcome, State: state})
}

func (s *Server) reset(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	state := sess.Reset()
	c.JSON(http.StatusOK, sessionResponse(sess, state))
}
