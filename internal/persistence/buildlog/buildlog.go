package buildlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"voxelforge.ai/internal/engine/voxel"
)

// Log is an async SQLite journal of build and terrain requests. Writes
// are buffered through a channel and dropped when the writer falls
// behind; the log is an index, never the source of truth for a build.
type Log struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqBuild reqKind = iota + 1
	reqTerrain
)

type req struct {
	kind    reqKind
	build   BuildEntry
	terrain TerrainEntry
}

// BuildEntry is one completed (or dry-run) build request.
type BuildEntry struct {
	RequestID  string
	Category   string
	Kind       string
	Position   voxel.Vec3i
	Rotation   int
	FlipX      bool
	FlipY      bool
	FlipZ      bool
	Size       voxel.Vec3i
	Seed       int64
	Placements int
	Placed     int
	Failed     int
	DryRun     bool
	RecordPath string
}

// TerrainEntry is one completed terrain analysis.
type TerrainEntry struct {
	RequestID        string
	Region           voxel.Region
	TerrainType      string
	WaterDescription string
	ProfilePoints    int
}

func Open(path string) (*Log, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	l := &Log{
		db: db,
		ch: make(chan req, 4096),
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.loop()
	}()
	return l, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT,
			category TEXT NOT NULL,
			kind TEXT NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			z INTEGER NOT NULL,
			rotation INTEGER NOT NULL,
			flip_x INTEGER NOT NULL,
			flip_y INTEGER NOT NULL,
			flip_z INTEGER NOT NULL,
			size_x INTEGER NOT NULL,
			size_y INTEGER NOT NULL,
			size_z INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			placements INTEGER NOT NULL,
			placed INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			dry_run INTEGER NOT NULL,
			record_path TEXT,
			raw_json TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_builds_kind ON builds(category, kind);`,
		`CREATE INDEX IF NOT EXISTS idx_builds_pos ON builds(x, z, y);`,
		`CREATE TABLE IF NOT EXISTS terrain_queries (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			request_id TEXT,
			min_x INTEGER NOT NULL,
			min_y INTEGER NOT NULL,
			min_z INTEGER NOT NULL,
			max_x INTEGER NOT NULL,
			max_y INTEGER NOT NULL,
			max_z INTEGER NOT NULL,
			terrain_type TEXT NOT NULL,
			water TEXT NOT NULL,
			profile_points INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (l *Log) Close() error {
	var err error
	l.once.Do(func() {
		l.closed.Store(true)
		close(l.ch)
		l.wg.Wait()
		err = l.db.Close()
	})
	return err
}

// WriteBuild queues a build entry; it never blocks the request path.
func (l *Log) WriteBuild(e BuildEntry) {
	if l == nil || l.closed.Load() {
		return
	}
	select {
	case l.ch <- req{kind: reqBuild, build: e}:
	default:
		// Drop if the writer falls behind.
	}
}

// WriteTerrain queues a terrain query entry.
func (l *Log) WriteTerrain(e TerrainEntry) {
	if l == nil || l.closed.Load() {
		return
	}
	select {
	case l.ch <- req{kind: reqTerrain, terrain: e}:
	default:
	}
}

func (l *Log) loop() {
	ctx := context.Background()

	insertBuild, _ := l.db.Prepare(`INSERT INTO builds(
		request_id,category,kind,x,y,z,rotation,flip_x,flip_y,flip_z,
		size_x,size_y,size_z,seed,placements,placed,failed,dry_run,
		record_path,raw_json,recorded_at
	) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	insertTerrain, _ := l.db.Prepare(`INSERT INTO terrain_queries(
		request_id,min_x,min_y,min_z,max_x,max_y,max_z,
		terrain_type,water,profile_points,recorded_at
	) VALUES(?,?,?,?,?,?,?,?,?,?,?)`)
	defer func() {
		if insertBuild != nil {
			_ = insertBuild.Close()
		}
		if insertTerrain != nil {
			_ = insertTerrain.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 256
		commitMaxWait = 2 * time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := l.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for r := range l.ch {
		begin()
		if tx == nil {
			continue
		}
		now := time.Now().UTC().Format(time.RFC3339Nano)
		switch r.kind {
		case reqBuild:
			if insertBuild == nil {
				continue
			}
			b := r.build
			raw, _ := json.Marshal(b)
			if _, err := tx.Stmt(insertBuild).Exec(
				b.RequestID, b.Category, b.Kind,
				b.Position.X, b.Position.Y, b.Position.Z,
				b.Rotation, boolInt(b.FlipX), boolInt(b.FlipY), boolInt(b.FlipZ),
				b.Size.X, b.Size.Y, b.Size.Z,
				b.Seed, b.Placements, b.Placed, b.Failed, boolInt(b.DryRun),
				b.RecordPath, string(raw), now,
			); err != nil {
				rollback()
				continue
			}
			opCount++

		case reqTerrain:
			if insertTerrain == nil {
				continue
			}
			t := r.terrain
			if _, err := tx.Stmt(insertTerrain).Exec(
				t.RequestID,
				t.Region.Min.X, t.Region.Min.Y, t.Region.Min.Z,
				t.Region.Max.X, t.Region.Max.Y, t.Region.Max.Z,
				t.TerrainType, t.WaterDescription, t.ProfilePoints, now,
			); err != nil {
				rollback()
				continue
			}
			opCount++
		}
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
			commit()
		}
	}

	commit()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// RecentBuilds reads back the newest build entries, newest first.
func (l *Log) RecentBuilds(limit int) ([]BuildEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.Query(`SELECT raw_json FROM builds ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BuildEntry
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var e BuildEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
