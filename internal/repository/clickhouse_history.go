package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"MoneyRoutine/internal/domain/models"
	domrepo "MoneyRoutine/internal/domain/repository"
	"MoneyRoutine/internal/service/metrics"
)

const sinkHistory = "clickhouse_history"

// HistorySchema returns the DDL for the snapshot table.
func HistorySchema(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts     DateTime64(3, 'UTC'),
			slot   LowCardinality(String),
			value  String,
			change Float64,
			status String
		) ENGINE = MergeTree
		PARTITION BY toYYYYMM(ts)
		ORDER BY (slot, ts)
		TTL toDateTime(ts) + INTERVAL 180 DAY`, table),
	}
}

// ClickHouseHistory stores one row per slot for every aggregated snapshot.
type ClickHouseHistory struct {
	db    *sql.DB
	table string
}

func NewClickHouseHistory(db *sql.DB, table string) *ClickHouseHistory {
	if table == "" {
		table = "market_snapshots"
	}
	return &ClickHouseHistory{db: db, table: table}
}

func (h *ClickHouseHistory) Record(ctx context.Context, at time.Time, data models.MarketData) error {
	start := time.Now()
	slots := models.Slots()
	values := make([]string, 0, len(slots))
	args := make([]any, 0, len(slots)*5)
	for _, s := range slots {
		q := data.Get(s)
		values = append(values, "(?, ?, ?, ?, ?)")
		args = append(args, at.UTC(), string(s), q.Value, q.Change, q.Status)
	}

	query := fmt.Sprintf("INSERT INTO %s (ts, slot, value, change, status) VALUES %s",
		h.table, strings.Join(values, ","))
	_, err := h.db.ExecContext(ctx, query, args...)
	metrics.SinkLatency.WithLabelValues(sinkHistory).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SinkErrors.WithLabelValues(sinkHistory).Inc()
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Recent returns up to limit observations for slot, newest first.
func (h *ClickHouseHistory) Recent(ctx context.Context, slot models.Slot, limit int) ([]models.Observation, error) {
	query := fmt.Sprintf(`SELECT ts, value, change, status FROM %s
		WHERE slot = ? ORDER BY ts DESC LIMIT ?`, h.table)
	rows, err := h.db.QueryContext(ctx, query, string(slot), limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	out := make([]models.Observation, 0, limit)
	for rows.Next() {
		o := models.Observation{Slot: slot}
		if err := rows.Scan(&o.At, &o.Value, &o.Change, &o.Status); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

var _ domrepo.SnapshotHistory = (*ClickHouseHistory)(nil)
