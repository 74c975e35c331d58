// Package tracksdata fetches optional language and label metadata for the tracks of a stream.
package tracksdata

import "context"

// Entry enriches the track at 1-based position ID.
type Entry struct {
	ID    int    `json:"id"`
	Lang  string `json:"lang"`
	Label string `json:"label"`
}

// Data is the metadata known for one stream.
type Data struct {
	Audio []Entry `json:"audio"`
	Subs  []Entry `json:"subs"`
}

// Empty reports whether there is nothing to merge.
func (d Data) Empty() bool {
	return len(d.Audio) == 0 && len(d.Subs) == 0
}

// Fetcher looks up metadata for a stream URL.
type Fetcher interface {
	Fetch(ctx context.Context, streamURL string) (Data, error)
}

// Nop never finds anything. It is used when no endpoint is configured.
type Nop struct{}

func (Nop) Fetch(context.Context, string) (Data, error) {
	return Data{}, nil
}
