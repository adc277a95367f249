package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/daybook-app/daybook-client/internal/utils"
	"github.com/daybook-app/daybook-client/models"
)

const defaultPullLimit = 100

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	if _, err := utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK); err != nil {
		s.logger.Err(err).Str("func", "Server.ping").Msg("failed to write response")
	}
}

// push applies a mutation batch under optimistic concurrency: a mutation
// whose client_updated_at_ms is older than the stored version is rejected
// with reason "conflict" and the server's current snapshot.
func (s *Server) push(w http.ResponseWriter, r *http.Request) {
	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Err(err).Str("func", "Server.push").Msg("malformed push request")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	resp := models.PushResponse{}
	for _, m := range req.Mutations {
		s.applyMutation(m, &resp)
	}
	resp.Cursor = s.seq
	s.mu.Unlock()

	if _, err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		s.logger.Err(err).Str("func", "Server.push").Msg("failed to write response")
	}
}

// applyMutation records the outcome of one mutation into resp. Caller holds
// s.mu.
func (s *Server) applyMutation(m models.PushMutation, resp *models.PushResponse) {
	if models.ResourcePlural(m.Resource) == "" || m.EntityID == "" {
		resp.Rejected = append(resp.Rejected, models.RejectedMutation{
			Resource: m.Resource,
			EntityID: m.EntityID,
			Reason:   models.RejectReasonInvalid,
		})
		return
	}

	byID, ok := s.entities[m.Resource]
	if !ok {
		byID = make(map[string]storedEntity)
		s.entities[m.Resource] = byID
	}

	if cur, exists := byID[m.EntityID]; exists && cur.updatedAtMs > m.ClientUpdatedAtMs {
		resp.Rejected = append(resp.Rejected, models.RejectedMutation{
			Resource: m.Resource,
			EntityID: m.EntityID,
			Reason:   models.RejectReasonConflict,
			Server:   cur.data,
		})
		return
	}

	entity := storedEntity{updatedAtMs: m.ClientUpdatedAtMs}
	if m.Op == models.OpDelete {
		entity.deleted = true
		entity.data = s.tombstone(m, byID[m.EntityID])
	} else {
		entity.data = m.Data
	}
	byID[m.EntityID] = entity

	s.seq++
	s.feed = append(s.feed, feedEntry{seq: s.seq, resource: m.Resource, data: entity.data})

	resp.Applied = append(resp.Applied, models.AppliedRef{Resource: m.Resource, EntityID: m.EntityID})
}

// tombstone builds the deleted-entity snapshot published on the change feed.
// It keeps the last stored attributes so snapshots stay schema-valid for
// resources with required fields.
func (s *Server) tombstone(m models.PushMutation, prev storedEntity) json.RawMessage {
	fields := map[string]any{}
	if len(prev.data) > 0 {
		_ = json.Unmarshal(prev.data, &fields)
	}
	fields["id"] = m.EntityID
	fields["updated_at_ms"] = m.ClientUpdatedAtMs
	fields["deleted"] = true

	raw, err := json.Marshal(fields)
	if err != nil {
		s.logger.Err(err).Str("func", "Server.tombstone").Msg("failed to build tombstone")
		return prev.data
	}
	return raw
}

// pull serves one page of the change feed starting after the given cursor.
func (s *Server) pull(w http.ResponseWriter, r *http.Request) {
	cursor, err := strconv.ParseInt(r.URL.Query().Get("cursor"), 10, 64)
	if err != nil || cursor < 0 {
		cursor = 0
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPullLimit
	}

	s.mu.Lock()
	resp := models.PullResponse{
		Cursor:     cursor,
		NextCursor: cursor,
		Changes:    make(map[string][]json.RawMessage),
	}
	for _, entry := range s.feed {
		if entry.seq <= cursor {
			continue
		}
		if limit == 0 {
			resp.HasMore = true
			break
		}
		plural := models.ResourcePlural(entry.resource)
		resp.Changes[plural] = append(resp.Changes[plural], entry.data)
		resp.NextCursor = entry.seq
		limit--
	}
	s.mu.Unlock()

	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		s.logger.Err(err).Str("func", "Server.pull").Msg("failed to write response")
	}
}
