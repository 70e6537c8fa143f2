package api

// StateResponse is the JSON body of GET /state.
type StateResponse struct {
	Running        bool   `json:"running"`
	Addr           string `json:"addr,omitempty"`
	UptimeSeconds  int64  `json:"uptimeSeconds"`
	Points         int    `json:"points"`
	Buckets        int    `json:"buckets"`
	PermanentError int    `json:"permanentError"`
	PendingDelayMs int64  `json:"pendingDelayMs"`
	PendingChunked bool   `json:"pendingChunked"`
	LastUserAgent  string `json:"lastUserAgent"`
}
