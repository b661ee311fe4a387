package models

import "time"

// Bar is one aggregated trade-volume observation over a fixed time slice,
// as returned by the market-data provider.
//
// Fields:
//   - Timestamp: start of the slice in Unix milliseconds.
//   - Volume: traded shares in the slice. Never negative; malformed
//     provider values are decoded as 0.
type Bar struct {
	Timestamp int64 `json:"t" example:"1726493400000"`
	Volume    int64 `json:"v" example:"1520344"`
}

// Time returns the bar start as a time.Time in the given location.
func (b Bar) Time(loc *time.Location) time.Time {
	return time.UnixMilli(b.Timestamp).In(loc)
}
