// internal/models/versioned.go
package models

// Versioned adds optimistic-lock helpers. Embed it anonymously in any
// entity whose updates must go through a row-version check.
type Versioned struct {
	RowVersion int64 `json:"row_version"`
}

func (v *Versioned) GetRowVersion() int64  { return v.RowVersion }
func (v *Versioned) SetRowVersion(n int64) { v.RowVersion = n }
