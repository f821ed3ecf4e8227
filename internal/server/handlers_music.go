package server

import (
	"context"
	"fmt"
	"net/http"

	"focusboard/internal/core/model"
	"focusboard/internal/core/music"
)

type musicResponse struct {
	music.State
	Playlist []model.Track `json:"playlist"`
}

type volumeRequest struct {
	Volume *int `json:"volume"`
}

func (server *Server) handleMusicState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, musicResponse{State: server.player.State(), Playlist: server.player.Playlist()})
}

func (server *Server) handleMusicControl(action func(context.Context) music.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, action(r.Context()))
	}
}

func (server *Server) handleSetVolume(w http.ResponseWriter, r *http.Request) {
	var req volumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeStoreError(w, err)
		return
	}
	if req.Volume == nil {
		writeStoreError(w, fmt.Errorf("%w: volume is required", errBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, server.player.SetVolume(r.Context(), *req.Volume))
}
