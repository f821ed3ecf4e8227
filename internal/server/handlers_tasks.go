package server

import (
	"bytes"
	"net/http"

	"focusboard/internal/core/model"
	"focusboard/internal/report"
)

type taskRequest struct {
	Text    string  `json:"text"`
	GroupID *string `json:"groupId"`
}

type groupRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type currentGroupRequest struct {
	ID string `json:"id"`
}

type groupsResponse struct {
	Groups       []model.TaskGroup `json:"groups"`
	CurrentGroup string            `json:"currentGroup"`
}

// groupParam returns the ?group= filter, falling back to the selected group.
func (server *Server) groupParam(r *http.Request) (string, error) {
	if r.URL.Query().Has("group") {
		return r.URL.Query().Get("group"), nil
	}
	return server.store.CurrentGroup(r.Context())
}

func (server *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	group, err := server.groupParam(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	tasks, err := server.store.ListTasks(r.Context(), group)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (server *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeStoreError(w, err)
		return
	}
	var group string
	if req.GroupID != nil {
		group = *req.GroupID
	} else {
		current, err := server.store.CurrentGroup(r.Context())
		if err != nil {
			writeStoreError(w, err)
			return
		}
		group = current
	}
	task, err := server.store.AddTask(r.Context(), req.Text, group)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (server *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := server.store.ToggleTask(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (server *Server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeStoreError(w, err)
		return
	}
	task, err := server.store.EditTask(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (server *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := server.store.DeleteTask(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (server *Server) handleClearCompleted(w http.ResponseWriter, r *http.Request) {
	removed, err := server.store.ClearCompleted(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (server *Server) handleTaskStats(w http.ResponseWriter, r *http.Request) {
	group, err := server.groupParam(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	stats, err := server.store.TaskStats(r.Context(), group)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (server *Server) handleTaskReport(w http.ResponseWriter, r *http.Request) {
	groups, err := server.store.ListGroups(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	tasks, err := server.store.ListTasks(r.Context(), model.AllGroups)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := report.TaskReport(&buf, groups, tasks, model.ComputeTaskStats(tasks)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="tasks.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func (server *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := server.store.ListGroups(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	current, err := server.store.CurrentGroup(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groupsResponse{Groups: groups, CurrentGroup: current})
}

func (server *Server) handleAddGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeStoreError(w, err)
		return
	}
	group, err := server.store.AddGroup(r.Context(), req.Name, req.Color)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (server *Server) handleSetCurrentGroup(w http.ResponseWriter, r *http.Request) {
	var req currentGroupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeStoreError(w, err)
		return
	}
	if err := server.store.SetCurrentGroup(r.Context(), req.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	server.handleListGroups(w, r)
}
