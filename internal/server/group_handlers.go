package server

import (
	"net/http"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/middleware"
	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/models"
)

type groupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{ID: g.ID, Name: g.Name, CreatedBy: g.CreatedBy, CreatedAt: g.CreatedAt}
}

type memberResponse struct {
	Name               string `json:"name"`
	Phone              string `json:"phone,omitempty"`
	TotalContributions int64  `json:"total_contributions"`
	TotalReceived      int64  `json:"total_received"`
	Balance            int64  `json:"balance"`
}

func toMemberResponse(m *models.Member) memberResponse {
	return memberResponse{
		Name:               m.Name,
		Phone:              m.Phone,
		TotalContributions: m.TotalContributions,
		TotalReceived:      m.TotalReceived,
		Balance:            m.Balance(),
	}
}

type createGroupRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}

	var req createGroupRequest
	if err := decode(r, &req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	claims := middleware.GetClaims(r.Context())
	group, err := s.groups.CreateGroup(r.Context(), req.ID, req.Name, claims.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	claims := middleware.GetClaims(r.Context())
	resp := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		if claims != nil && !claims.InGroup(g.ID) {
			continue
		}
		resp = append(resp, toGroupResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	group, err := s.groups.GetGroup(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

type addMemberRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}
	if !s.requireAdmin(w, r) {
		return
	}

	var req addMemberRequest
	if err := decode(r, &req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := s.groups.GetGroup(r.Context(), groupID); err != nil {
		writeError(w, err)
		return
	}
	member, err := s.members.AddMember(r.Context(), groupID, req.Name, req.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(member))
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	members, err := s.members.ListMembers(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = toMemberResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	member, err := s.members.GetMember(r.Context(), groupID, r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

type summaryRow struct {
	Name               string `json:"name"`
	Phone              string `json:"phone,omitempty"`
	TotalContributions int64  `json:"total_contributions"`
	TotalReceived      int64  `json:"total_received"`
	Balance            int64  `json:"balance"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	summaries, err := s.members.Summarize(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]summaryRow, len(summaries))
	for i, row := range summaries {
		resp[i] = summaryRow(row)
	}
	writeJSON(w, http.StatusOK, resp)
}
