package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"focusboard/internal/core/model"
	"focusboard/internal/core/music"
	"focusboard/internal/core/timer"
	"focusboard/internal/storage"
)

type idleScheduler struct{}

func (idleScheduler) Every(time.Duration, func()) timer.CancelFunc { return func() {} }

type testEnv struct {
	server *Server
	engine *timer.Engine
	db     *storage.Database
	dir    string
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})

	engine := timer.New(model.DefaultTimerSettings(), timer.Config{Scheduler: idleScheduler{}})
	t.Cleanup(engine.Close)

	player := music.NewPlayer(ctx, db, nil)
	options := Options{
		SoundPath: filepath.Join(dir, "notification.mp3"),
		AudioDir:  filepath.Join(dir, "audio"),
	}
	return &testEnv{server: New(options, engine, db, player), engine: engine, db: db, dir: dir}
}

func (env *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	if err := json.Unmarshal(rec.Body.Bytes(), &value); err != nil {
		t.Fatalf("decode %q failed: %v", rec.Body.String(), err)
	}
	return value
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestPing(t *testing.T) {
	env := setupTestServer(t)
	rec := env.do(t, http.MethodGet, "/api/ping", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]string](t, rec)["message"]; got != "Pong! Server is running" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestNotificationSound(t *testing.T) {
	env := setupTestServer(t)
	rec := env.do(t, http.MethodGet, "/notification.mp3", nil)
	expectStatus(t, rec, http.StatusNotFound)
	if !strings.Contains(rec.Body.String(), "Sound file not found") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	if err := os.WriteFile(filepath.Join(env.dir, "notification.mp3"), []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write sound failed: %v", err)
	}
	rec = env.do(t, http.MethodGet, "/notification.mp3", nil)
	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestAudioFiles(t *testing.T) {
	env := setupTestServer(t)
	audioDir := filepath.Join(env.dir, "audio")
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(audioDir, "lofi-beat-1.mp3"), []byte("beat"), 0o644); err != nil {
		t.Fatalf("write audio failed: %v", err)
	}
	rec := env.do(t, http.MethodGet, "/audio/lofi-beat-1.mp3", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "beat" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestTimerControls(t *testing.T) {
	env := setupTestServer(t)

	state := decode[timer.State](t, env.do(t, http.MethodGet, "/api/timer", nil))
	if state.Mode != timer.ModeWork || state.TimeLeft != 1500 || state.IsRunning {
		t.Fatalf("unexpected initial state %+v", state)
	}

	state = decode[timer.State](t, env.do(t, http.MethodPost, "/api/timer/start", nil))
	if !state.IsRunning {
		t.Fatalf("expected running timer")
	}

	state = decode[timer.State](t, env.do(t, http.MethodPost, "/api/timer/skip", nil))
	if state.Mode != timer.ModeShortBreak || state.TimeLeft != 300 || state.IsRunning {
		t.Fatalf("unexpected state after skip %+v", state)
	}

	state = decode[timer.State](t, env.do(t, http.MethodPost, "/api/timer/reset", nil))
	if state.Mode != timer.ModeWork || state.CurrentRound != 1 {
		t.Fatalf("unexpected state after reset %+v", state)
	}

	expectStatus(t, env.do(t, http.MethodGet, "/api/timer/start", nil), http.StatusMethodNotAllowed)
}

func TestTimerSettings(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	rec := env.do(t, http.MethodPut, "/api/timer/settings", map[string]int{"workTime": 61})
	expectStatus(t, rec, http.StatusBadRequest)
	if env.db.LoadTimerSettings(ctx) != model.DefaultTimerSettings() {
		t.Fatalf("invalid settings must not be persisted")
	}

	expectStatus(t, env.do(t, http.MethodPut, "/api/timer/settings", "{oops"), http.StatusBadRequest)

	env.engine.Start()
	rec = env.do(t, http.MethodPut, "/api/timer/settings", map[string]int{"workTime": 50, "rounds": 2})
	expectStatus(t, rec, http.StatusOK)
	want := model.TimerSettings{WorkTime: 50, ShortBreakTime: 5, LongBreakTime: 15, Rounds: 2}
	if got := decode[model.TimerSettings](t, rec); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got := env.db.LoadTimerSettings(ctx); got != want {
		t.Fatalf("expected persisted %+v, got %+v", want, got)
	}
	state := env.engine.State()
	if state.TimeLeft != 3000 || state.TotalRounds != 2 || state.IsRunning {
		t.Fatalf("expected reset engine, got %+v", state)
	}

	got := decode[model.TimerSettings](t, env.do(t, http.MethodGet, "/api/timer/settings", nil))
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestTaskEndpoints(t *testing.T) {
	env := setupTestServer(t)

	rec := env.do(t, http.MethodPost, "/api/tasks", map[string]string{"text": "write tests", "groupId": "work"})
	expectStatus(t, rec, http.StatusCreated)
	task := decode[model.Task](t, rec)
	if task.GroupID == nil || *task.GroupID != "work" {
		t.Fatalf("unexpected task %+v", task)
	}

	expectStatus(t, env.do(t, http.MethodPost, "/api/tasks", map[string]string{"text": "  "}), http.StatusBadRequest)

	rec = env.do(t, http.MethodPost, "/api/tasks", map[string]string{"text": "no group"})
	expectStatus(t, rec, http.StatusCreated)
	if decode[model.Task](t, rec).GroupID != nil {
		t.Fatalf("expected ungrouped task while all is selected")
	}

	tasks := decode[[]model.Task](t, env.do(t, http.MethodGet, "/api/tasks?group=work", nil))
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("unexpected work tasks %+v", tasks)
	}
	tasks = decode[[]model.Task](t, env.do(t, http.MethodGet, "/api/tasks", nil))
	if len(tasks) != 2 {
		t.Fatalf("expected all tasks, got %d", len(tasks))
	}

	toggled := decode[model.Task](t, env.do(t, http.MethodPatch, "/api/tasks/"+task.ID, nil))
	if !toggled.Completed {
		t.Fatalf("expected completed task")
	}
	edited := decode[model.Task](t, env.do(t, http.MethodPut, "/api/tasks/"+task.ID, map[string]string{"text": "write more tests"}))
	if edited.Text != "write more tests" {
		t.Fatalf("unexpected text %q", edited.Text)
	}

	stats := decode[model.TaskStats](t, env.do(t, http.MethodGet, "/api/tasks/stats?group=all", nil))
	if stats != (model.TaskStats{Total: 2, Completed: 1, CompletionRate: 50}) {
		t.Fatalf("unexpected stats %+v", stats)
	}

	rec = env.do(t, http.MethodGet, "/api/tasks/report.pdf", nil)
	expectStatus(t, rec, http.StatusOK)
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected PDF body")
	}

	removed := decode[map[string]int64](t, env.do(t, http.MethodDelete, "/api/tasks/completed", nil))
	if removed["removed"] != 1 {
		t.Fatalf("expected one removed, got %v", removed)
	}

	expectStatus(t, env.do(t, http.MethodPatch, "/api/tasks/missing", nil), http.StatusNotFound)
	rec = env.do(t, http.MethodDelete, "/api/tasks/missing", nil)
	expectStatus(t, rec, http.StatusNotFound)
	if decode[map[string]string](t, rec)["error"] == "" {
		t.Fatalf("expected error message")
	}
}

func TestGroupEndpoints(t *testing.T) {
	env := setupTestServer(t)

	resp := decode[groupsResponse](t, env.do(t, http.MethodGet, "/api/groups", nil))
	if len(resp.Groups) != 3 || resp.CurrentGroup != model.AllGroups {
		t.Fatalf("unexpected groups %+v", resp)
	}

	rec := env.do(t, http.MethodPost, "/api/groups", map[string]string{"name": "Errands", "color": "orange"})
	expectStatus(t, rec, http.StatusCreated)
	group := decode[model.TaskGroup](t, rec)

	rec = env.do(t, http.MethodPost, "/api/tasks", map[string]string{"text": "post letter"})
	expectStatus(t, rec, http.StatusCreated)
	task := decode[model.Task](t, rec)
	if task.GroupID == nil || *task.GroupID != group.ID {
		t.Fatalf("expected task in the newly selected group, got %+v", task)
	}

	expectStatus(t, env.do(t, http.MethodPut, "/api/groups/current", map[string]string{"id": "missing"}), http.StatusNotFound)
	resp = decode[groupsResponse](t, env.do(t, http.MethodPut, "/api/groups/current", map[string]string{"id": "all"}))
	if resp.CurrentGroup != model.AllGroups || len(resp.Groups) != 4 {
		t.Fatalf("unexpected groups %+v", resp)
	}
}

func TestMusicEndpoints(t *testing.T) {
	env := setupTestServer(t)

	resp := decode[musicResponse](t, env.do(t, http.MethodGet, "/api/music", nil))
	if resp.Volume != 50 || len(resp.Playlist) != 5 || resp.IsPlaying {
		t.Fatalf("unexpected music state %+v", resp)
	}

	state := decode[music.State](t, env.do(t, http.MethodPost, "/api/music/toggle", nil))
	if !state.IsPlaying {
		t.Fatalf("expected playing")
	}
	state = decode[music.State](t, env.do(t, http.MethodPost, "/api/music/previous", nil))
	if state.CurrentTrackIndex != 4 || state.CurrentTrackName != "Peaceful Garden" {
		t.Fatalf("unexpected track %+v", state)
	}
	state = decode[music.State](t, env.do(t, http.MethodPost, "/api/music/next", nil))
	if state.CurrentTrackIndex != 0 {
		t.Fatalf("expected wrap to first track, got %d", state.CurrentTrackIndex)
	}

	state = decode[music.State](t, env.do(t, http.MethodPut, "/api/music/volume", map[string]int{"volume": 140}))
	if state.Volume != 100 {
		t.Fatalf("expected clamped volume, got %d", state.Volume)
	}
	expectStatus(t, env.do(t, http.MethodPut, "/api/music/volume", map[string]string{}), http.StatusBadRequest)

	settings, err := env.db.LoadMusicSettings(context.Background())
	if err != nil {
		t.Fatalf("LoadMusicSettings failed: %v", err)
	}
	if settings.Volume != 100 || settings.TrackIndex != 0 {
		t.Fatalf("unexpected persisted music settings %+v", settings)
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	env := setupTestServer(t)
	env.server.options.Addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.server.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/api/ping")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}
