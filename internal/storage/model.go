// internal/storage/model.go
//
// 定義最終帳戶快照的序列化格式。
// 快照只在執行結束時輸出，不會被載入作為下一次執行的起點。
package storage

import (
	"time"

	"payments/internal/money"
)

// Version 為目前快照結構版本。
const Version = 1

// Meta 為快照的中繼資料。
type Meta struct {
	Storage   string    `json:"storage"`        // 儲存類型，例如 "json_snapshot"
	Version   int       `json:"version"`        // 結構版本號
	Timestamp time.Time `json:"timestamp"`      // 快照建立時間
	Note      string    `json:"note,omitempty"` // 產生此快照的 run id
}

// PersistAccount 為帳戶在快照中的格式；金額以 4 位小數字串表示。
type PersistAccount struct {
	Client    uint16       `json:"client"`
	Available money.Amount `json:"available"`
	Held      money.Amount `json:"held"`
	Total     money.Amount `json:"total"`
	Locked    bool         `json:"locked"`
}

// Snapshot 為所有帳戶的最終狀態，依 Client 遞增排序。
type Snapshot struct {
	Meta     Meta             `json:"_meta"`
	Accounts []PersistAccount `json:"accounts"`
}
