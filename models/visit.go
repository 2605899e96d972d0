package models

import "time"

// VisitorEvent is one landing-page visit as stored in ClickHouse.
type VisitorEvent struct {
	EventID     string    `json:"eventId"`
	SessionID   *string   `json:"sessionId"`
	FBP         *string   `json:"fbp"`
	FBC         *string   `json:"fbc"`
	PageURL     string    `json:"pageUrl"`
	Referrer    *string   `json:"referrer"`
	UserAgent   string    `json:"userAgent"`
	IPAddress   string    `json:"ipAddress"`
	Search      string    `json:"search"`
	Attribution string    `json:"attribution"`
	UTMSource   string    `json:"utmSource"`
	UTMMedium   string    `json:"utmMedium"`
	UTMCampaign string    `json:"utmCampaign"`
	Timestamp   time.Time `json:"timestamp"`
}

type CountByTime struct {
	Time  time.Time `json:"time"`
	Count uint64    `json:"count"`
}

type SourceCount struct {
	Source string `json:"source"`
	Count  uint64 `json:"count"`
}
