package server

import (
	"net/http"
	"os"
)

func (server *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Pong! Server is running"})
}

func (server *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	info, err := os.Stat(server.options.SoundPath)
	if err != nil || info.IsDir() {
		http.Error(w, "Sound file not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, server.options.SoundPath)
}

func (server *Server) handleTimerState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, server.engine.State())
}

func (server *Server) handleTimerControl(action func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action()
		writeJSON(w, http.StatusOK, server.engine.State())
	}
}

func (server *Server) handleGetTimerSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, server.engine.Settings())
}

// handlePutTimerSettings accepts partial records; missing fields keep their current value.
func (server *Server) handlePutTimerSettings(w http.ResponseWriter, r *http.Request) {
	settings := server.engine.Settings()
	if err := decodeJSON(w, r, &settings); err != nil {
		writeStoreError(w, err)
		return
	}
	if err := settings.Validate(); err != nil {
		writeStoreError(w, err)
		return
	}
	if err := server.store.SaveTimerSettings(r.Context(), settings); err != nil {
		writeStoreError(w, err)
		return
	}
	server.engine.UpdateSettings(settings)
	writeJSON(w, http.StatusOK, settings)
}
