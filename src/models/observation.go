package models

// MObservation is the journal row for a single recorded value.
// BatchSeq groups the rows of one accepted batch; Position is the
// value's index inside that batch.
type MObservation struct {
	Symbol     string  `json:"symbol"`
	Value      float64 `json:"value"`
	BatchSeq   int64   `json:"batch_seq"`
	Position   int     `json:"position"`
	ReceivedAt int64   `json:"received_at"`
}
