package server

import (
	"net/http"
	"strconv"

	"github.com/draiml/draiml/internal/logging"
)

// handleDecisionsWS streams ledger entries as JSON messages. With ?replay=N
// the last N entries are sent first; live entries follow without gaps or
// duplicates.
func (s *Server) handleDecisionsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	// subscribe before reading the replay so nothing falls between them
	feed, cancel := s.deps.Ledger.Subscribe()
	defer cancel()

	lastSeq := 0
	if q := r.URL.Query(); q.Has("replay") {
		// replay without a positive count sends the whole ledger
		n, _ := strconv.Atoi(q.Get("replay"))
		for _, e := range s.deps.Ledger.Recent(n) {
			if err := conn.WriteJSON(e); err != nil {
				return
			}
			lastSeq = e.Seq
		}
	}

	// the read loop only notices client close frames
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	s.logger.Info("decision feed subscribed", logging.Field{Key: "remote", Value: r.RemoteAddr})
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case e, ok := <-feed:
			if !ok {
				return
			}
			if e.Seq <= lastSeq {
				continue
			}
			if err := conn.WriteJSON(e); err != nil {
				return
			}
		}
	}
}
