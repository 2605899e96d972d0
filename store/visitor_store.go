package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"recruitfunnel/site/database"
	"recruitfunnel/site/models"
	"recruitfunnel/site/utils"
)

type VisitorStore struct {
	DB     *database.ClickHouseClient
	logger *zap.Logger
}

func NewVisitorStore(chClient *database.ClickHouseClient, logger *zap.Logger) *VisitorStore {
	return &VisitorStore{
		DB:     chClient,
		logger: logger,
	}
}

func (s *VisitorStore) InsertVisits(ctx context.Context, visits []models.VisitorEvent) error {
	if len(visits) == 0 {
		return nil
	}

	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO visitor_events (
			event_id, session_id, fbp, fbc, page_url, referrer, user_agent, ip_address,
			search, attribution, utm_source, utm_medium, utm_campaign, timestamp
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, v := range visits {
		err := batch.Append(
			v.EventID,
			v.SessionID,
			v.FBP,
			v.FBC,
			v.PageURL,
			v.Referrer,
			v.UserAgent,
			v.IPAddress,
			v.Search,
			v.Attribution,
			v.UTMSource,
			v.UTMMedium,
			v.UTMCampaign,
			v.Timestamp,
		)
		if err != nil {
			_ = batch.Abort()
			return fmt.Errorf("failed to append visit %s: %w", v.EventID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	s.logger.Debug("inserted visitor events", zap.Int("count", len(visits)))
	return nil
}

func (s *VisitorStore) GetVisitCountsOverTime(ctx context.Context, interval string, start, end time.Time) ([]models.CountByTime, error) {
	if !utils.IsValidInterval(interval) {
		return nil, fmt.Errorf("invalid interval: %s", interval)
	}

	query := fmt.Sprintf(`
		SELECT toStartOf%s(timestamp) AS time_bucket, count() AS visits
		FROM visitor_events
		WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY time_bucket
		ORDER BY time_bucket ASC
	`, interval)

	rows, err := s.DB.Conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query visit counts over time: %w", err)
	}
	defer rows.Close()

	var results []models.CountByTime
	for rows.Next() {
		var (
			bucket time.Time
			count  uint64
		)
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("scan visit counts: %w", err)
		}
		results = append(results, models.CountByTime{Time: bucket, Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during visit counts query: %w", err)
	}

	return results, nil
}

func (s *VisitorStore) GetUniqueSessionsOverTime(ctx context.Context, interval string, start, end time.Time) ([]models.CountByTime, error) {
	if !utils.IsValidInterval(interval) {
		return nil, fmt.Errorf("invalid interval: %s", interval)
	}

	query := fmt.Sprintf(`
		SELECT toStartOf%s(timestamp) AS time_bucket, uniq(session_id) AS sessions
		FROM visitor_events
		WHERE timestamp >= ? AND timestamp <= ? AND session_id IS NOT NULL
		GROUP BY time_bucket
		ORDER BY time_bucket ASC
	`, interval)

	rows, err := s.DB.Conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query unique sessions over time: %w", err)
	}
	defer rows.Close()

	var results []models.CountByTime
	for rows.Next() {
		var (
			bucket time.Time
			count  uint64
		)
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("scan unique sessions: %w", err)
		}
		results = append(results, models.CountByTime{Time: bucket, Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for unique sessions: %w", err)
	}

	return results, nil
}

func (s *VisitorStore) GetTopSources(ctx context.Context, start, end time.Time, limit uint64) ([]models.SourceCount, error) {
	if limit == 0 {
		limit = 10
	}

	query := `
		SELECT if(utm_source = '', '(direct)', utm_source) AS source, count() AS visits
		FROM visitor_events
		WHERE timestamp >= ? AND timestamp <= ?
		GROUP BY source
		ORDER BY visits DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top sources: %w", err)
	}
	defer rows.Close()

	var results []models.SourceCount
	for rows.Next() {
		var sc models.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan top sources: %w", err)
		}
		results = append(results, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for top sources: %w", err)
	}

	return results, nil
}
