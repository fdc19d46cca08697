package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Run states.
const (
	StateGenerating = "generating"
	StateSuccess    = "success"
	StateFailed     = "failed"
)

// Status is the record kept for one generation run.
type Status struct {
	State    string
	Message  string
	Output   string
	Days     int
	Pages    int
	Start    *time.Time
	End      *time.Time
	Metadata map[string]any
}

// RedisStatus stores run status as a hash per run.
type RedisStatus struct {
	client *redis.Client
	keyNS  string
	ttl    time.Duration
}

// NewRedisStatus connects and pings Redis.
func NewRedisStatus(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStatus, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	c := redis.NewClient(opt)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := c.Ping(pctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStatus{client: c, keyNS: "readingplan", ttl: ttl}, nil
}

func (s *RedisStatus) key(runID string) string { return fmt.Sprintf("%s:%s:status", s.keyNS, runID) }

// Set writes st and refreshes the key TTL.
func (s *RedisStatus) Set(ctx context.Context, runID string, st Status) error {
	k := s.key(runID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, k, toHash(st))
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Get reads a run status; ok is false when the run is unknown.
func (s *RedisStatus) Get(ctx context.Context, runID string) (Status, bool, error) {
	res, err := s.client.HGetAll(ctx, s.key(runID)).Result()
	if err != nil {
		return Status{}, false, err
	}
	if len(res) == 0 {
		return Status{}, false, nil
	}
	return fromHash(res), true, nil
}

func (s *RedisStatus) Close() error { return s.client.Close() }

func toHash(st Status) map[string]any {
	m := map[string]any{
		"state":   st.State,
		"message": st.Message,
		"output":  st.Output,
		"days":    st.Days,
		"pages":   st.Pages,
	}
	if st.Start != nil {
		m["start"] = st.Start.Format(time.RFC3339Nano)
	}
	if st.End != nil {
		m["end"] = st.End.Format(time.RFC3339Nano)
	}
	if st.Metadata != nil {
		b, _ := json.Marshal(st.Metadata)
		m["metadata"] = string(b)
	}
	return m
}

func fromHash(res map[string]string) Status {
	st := Status{
		State:   res["state"],
		Message: res["message"],
		Output:  res["output"],
	}
	// unparsable counters read as 0
	st.Days, _ = strconv.Atoi(res["days"])
	st.Pages, _ = strconv.Atoi(res["pages"])
	if v := res["start"]; v != "" {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			st.Start = &t
		}
	}
	if v := res["end"]; v != "" {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			st.End = &t
		}
	}
	if v := res["metadata"]; v != "" {
		_ = json.Unmarshal([]byte(v), &st.Metadata)
	}
	return st
}
