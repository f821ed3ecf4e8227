// Package server exposes the timer, tasks and music player over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"focusboard/internal/core/model"
	"focusboard/internal/core/music"
	"focusboard/internal/core/timer"
)

const shutdownTimeout = 5 * time.Second

// Store is the persistence the handlers need.
type Store interface {
	SaveTimerSettings(ctx context.Context, settings model.TimerSettings) error

	AddTask(ctx context.Context, text string, groupID string) (model.Task, error)
	ListTasks(ctx context.Context, group string) ([]model.Task, error)
	ToggleTask(ctx context.Context, id string) (model.Task, error)
	EditTask(ctx context.Context, id string, text string) (model.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ClearCompleted(ctx context.Context) (int64, error)
	TaskStats(ctx context.Context, group string) (model.TaskStats, error)

	ListGroups(ctx context.Context) ([]model.TaskGroup, error)
	AddGroup(ctx context.Context, name string, color string) (model.TaskGroup, error)
	CurrentGroup(ctx context.Context) (string, error)
	SetCurrentGroup(ctx context.Context, id string) error
}

// Options configures file locations and the listen address.
type Options struct {
	Addr      string
	SoundPath string
	AudioDir  string
}

// Server serves the HTTP API.
type Server struct {
	options Options
	engine  *timer.Engine
	store   Store
	player  *music.Player
	handler http.Handler
}

// New wires the routes.
func New(options Options, engine *timer.Engine, store Store, player *music.Player) *Server {
	server := &Server{
		options: options,
		engine:  engine,
		store:   store,
		player:  player,
	}
	server.handler = logRequests(server.routes())
	return server
}

// Handler returns the root handler.
func (server *Server) Handler() http.Handler {
	return server.handler
}

func (server *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", server.handlePing)
	mux.HandleFunc("GET /notification.mp3", server.handleSound)
	mux.Handle("GET /audio/", http.StripPrefix("/audio/", http.FileServer(http.Dir(server.options.AudioDir))))

	mux.HandleFunc("GET /api/timer", server.handleTimerState)
	mux.HandleFunc("POST /api/timer/start", server.handleTimerControl(server.engine.Start))
	mux.HandleFunc("POST /api/timer/reset", server.handleTimerControl(server.engine.Reset))
	mux.HandleFunc("POST /api/timer/skip", server.handleTimerControl(server.engine.Skip))
	mux.HandleFunc("GET /api/timer/settings", server.handleGetTimerSettings)
	mux.HandleFunc("PUT /api/timer/settings", server.handlePutTimerSettings)

	mux.HandleFunc("GET /api/tasks", server.handleListTasks)
	mux.HandleFunc("POST /api/tasks", server.handleAddTask)
	mux.HandleFunc("GET /api/tasks/stats", server.handleTaskStats)
	mux.HandleFunc("GET /api/tasks/report.pdf", server.handleTaskReport)
	mux.HandleFunc("DELETE /api/tasks/completed", server.handleClearCompleted)
	mux.HandleFunc("PATCH /api/tasks/{id}", server.handleToggleTask)
	mux.HandleFunc("PUT /api/tasks/{id}", server.handleEditTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", server.handleDeleteTask)

	mux.HandleFunc("GET /api/groups", server.handleListGroups)
	mux.HandleFunc("POST /api/groups", server.handleAddGroup)
	mux.HandleFunc("PUT /api/groups/current", server.handleSetCurrentGroup)

	mux.HandleFunc("GET /api/music", server.handleMusicState)
	mux.HandleFunc("POST /api/music/toggle", server.handleMusicControl(func(context.Context) music.State { return server.player.Toggle() }))
	mux.HandleFunc("POST /api/music/next", server.handleMusicControl(server.player.Next))
	mux.HandleFunc("POST /api/music/previous", server.handleMusicControl(server.player.Previous))
	mux.HandleFunc("PUT /api/music/volume", server.handleSetVolume)

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (server *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              server.options.Addr,
		Handler:           server.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http server listening on %s", server.options.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(status int) {
	recorder.status = status
	recorder.ResponseWriter.WriteHeader(status)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		if recorder.status >= http.StatusInternalServerError {
			log.Printf("%s %s -> %d (%s)", r.Method, r.URL.Path, recorder.status, time.Since(started))
		}
	})
}
