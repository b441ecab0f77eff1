package snowfall

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gekko3d/snowfall/intro/sequence"
	"github.com/gekko3d/snowfall/scenert/core"
	"github.com/gekko3d/snowfall/scenert/model"
	"github.com/google/uuid"
	"github.com/gopxl/beep"
)

type AssetId string

type AssetStatus int

const (
	AssetPending AssetStatus = iota
	AssetLoaded
	AssetFailed
)

func (s AssetStatus) String() string {
	switch s {
	case AssetPending:
		return "pending"
	case AssetLoaded:
		return "loaded"
	case AssetFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadFunc runs on a worker goroutine and produces the decoded asset.
type LoadFunc func(ctx context.Context) (any, error)

// ApplyFunc runs on the main loop with the decoded asset.
type ApplyFunc func(value any) error

type AssetRecord struct {
	Id       AssetId
	Path     string
	Tracked  bool
	Status   AssetStatus
	Err      error
	Started  time.Time
	Finished time.Time
}

type assetResult struct {
	id    AssetId
	value any
	err   error
}

// AssetServer loads assets in the background and hands results back to the main
// loop. Ready fires once every tracked load has ended, failed or not, and Seal
// has been called.
type AssetServer struct {
	ready   *sequence.Signal
	logger  Logger
	results chan assetResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	records  map[AssetId]*AssetRecord
	order    []AssetId
	appliers map[AssetId]ApplyFunc
	inFlight int
	tracked  int
	sealed   bool
}

func NewAssetServer(ready *sequence.Signal, logger Logger) *AssetServer {
	if ready == nil {
		ready = sequence.NewSignal()
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AssetServer{
		ready:    ready,
		logger:   logger,
		results:  make(chan assetResult, 16),
		ctx:      ctx,
		cancel:   cancel,
		records:  make(map[AssetId]*AssetRecord),
		appliers: make(map[AssetId]ApplyFunc),
	}
}

func (s *AssetServer) Ready() *sequence.Signal {
	return s.ready
}

// Load starts load on a worker. Tracked loads gate readiness, background loads
// do not. apply may be nil.
func (s *AssetServer) Load(path string, tracked bool, now time.Time, load LoadFunc, apply ApplyFunc) AssetId {
	id := makeAssetId()
	s.records[id] = &AssetRecord{
		Id:      id,
		Path:    path,
		Tracked: tracked,
		Status:  AssetPending,
		Started: now,
	}
	s.order = append(s.order, id)
	if apply != nil {
		s.appliers[id] = apply
	}
	s.inFlight++
	if tracked {
		s.tracked++
	}
	s.logger.Debugf("asset %s: loading %s", id, path)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		value, err := load(s.ctx)
		select {
		case s.results <- assetResult{id: id, value: value, err: err}:
		case <-s.ctx.Done():
		}
	}()
	return id
}

// Seal marks the tracked set complete. Readiness can only fire after Seal.
func (s *AssetServer) Seal(now time.Time) {
	s.sealed = true
	s.checkReady(now)
}

// Poll applies every finished load without blocking and returns how many were
// handled.
func (s *AssetServer) Poll(now time.Time) int {
	n := 0
	for {
		select {
		case res := <-s.results:
			s.finish(res, now)
			n++
		default:
			return n
		}
	}
}

// Await blocks until every in-flight load finished or ctx is done. now supplies
// completion timestamps.
func (s *AssetServer) Await(ctx context.Context, now func() time.Time) error {
	for s.inFlight > 0 {
		select {
		case res := <-s.results:
			s.finish(res, now())
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *AssetServer) finish(res assetResult, now time.Time) {
	rec, ok := s.records[res.id]
	if !ok || rec.Status != AssetPending {
		return
	}
	err := res.err
	if err == nil {
		if apply, ok := s.appliers[res.id]; ok {
			if applyErr := apply(res.value); applyErr != nil {
				err = fmt.Errorf("apply: %w", applyErr)
			}
		}
	}
	delete(s.appliers, res.id)

	rec.Finished = now
	if err != nil {
		rec.Status = AssetFailed
		rec.Err = err
		s.logger.Errorf("asset %s (%s) failed: %v", rec.Id, rec.Path, err)
	} else {
		rec.Status = AssetLoaded
		s.logger.Infof("asset %s loaded in %s", rec.Path, now.Sub(rec.Started).Round(time.Millisecond))
	}

	s.inFlight--
	if rec.Tracked {
		s.tracked--
	}
	s.checkReady(now)
}

func (s *AssetServer) checkReady(now time.Time) {
	if s.sealed && s.tracked == 0 && s.ready.Fire(now) {
		s.logger.Infof("assets ready")
	}
}

func (s *AssetServer) Record(id AssetId) (AssetRecord, bool) {
	rec, ok := s.records[id]
	if !ok {
		return AssetRecord{}, false
	}
	return *rec, true
}

// Records lists every load in start order.
func (s *AssetServer) Records() []AssetRecord {
	out := make([]AssetRecord, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.records[id])
	}
	return out
}

func (s *AssetServer) InFlight() int {
	return s.inFlight
}

// Close cancels outstanding loads and waits for the workers.
func (s *AssetServer) Close() {
	s.cancel()
	s.wg.Wait()
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// AssetServerModule loads the scene model (tracked) and the ambient track
// (background). Install it after SceneModule and SoundModule.
type AssetServerModule struct {
	Model string
	Music string
}

func (mod AssetServerModule) Install(app *App, cmd *Commands) {
	logger := app.Logger()
	server := NewAssetServer(sequence.NewSignal(), logger)
	cmd.AddResources(server, server.Ready())
	app.onCleanup(server.Close)

	now := time.Now()
	if t, ok := Resource[Time](app); ok {
		now = t.Time
	}

	if mod.Model != "" {
		scene, ok := Resource[core.Scene](app)
		if !ok {
			panic("AssetServerModule requires SceneModule")
		}
		path := mod.Model
		server.Load(path, true, now, func(ctx context.Context) (any, error) {
			return model.Load(path)
		}, func(value any) error {
			meshes := value.([]*core.Mesh)
			scene.AddMeshes(meshes...)
			logger.Infof("model %s: %d meshes, %d triangles", path, len(meshes), scene.Triangles())
			return nil
		})
	}

	if mod.Music != "" {
		if sound, ok := Resource[SoundState](app); ok {
			path := mod.Music
			server.Load(path, false, now, func(ctx context.Context) (any, error) {
				return decodeTrack(path)
			}, func(value any) error {
				player, err := newBeepPlayer(value.(*beep.Buffer), sound.Volume)
				if err != nil {
					logger.Warnf("audio unavailable, continuing silently: %v", err)
					return nil
				}
				sound.attach(player)
				return nil
			})
		}
	}

	server.Seal(now)

	cmd.UseSystem(
		System(func(t *Time, server *AssetServer) {
			server.Poll(t.Time)
		}).InStage(PreUpdate).RunAlways(),
	)
}
