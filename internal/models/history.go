package models

// HistoryItem is one completed analysis. Timestamp is unix milliseconds.
type HistoryItem struct {
	ID        string       `json:"id"`
	Analysis  FontAnalysis `json:"analysis"`
	Timestamp int64        `json:"timestamp"`
	Thumbnail string       `json:"thumbnail,omitempty"`
}

type SearchHistoryItem struct {
	ID             string           `json:"id"`
	Timestamp      int64            `json:"timestamp"`
	SearchCriteria SearchCriteria   `json:"searchCriteria"`
	Results        FontSearchResult `json:"results"`
	FontNames      []string         `json:"fontNames"`
}

// HistoryView is a history entry decorated for display.
type HistoryView struct {
	HistoryItem
	TimeAgo string `json:"timeAgo"`
}

type SearchHistoryView struct {
	SearchHistoryItem
	TimeAgo string `json:"timeAgo"`
}
