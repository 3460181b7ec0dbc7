// internal/storage/jsonstore.go
//
// 提供 JSON 快照的序列化與反序列化。
// 寫檔採「原子寫入」：先寫入 .tmp 檔，再以 rename() 取代原檔。
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Encode 將快照以縮排 JSON 寫入 w。
func Encode(w io.Writer, snap Snapshot) error {
	if snap.Accounts == nil {
		snap.Accounts = []PersistAccount{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// LoadSnapshot 讀取指定路徑的 JSON 快照，用於檢查 --snapshot 寫出的檔案。
// ledger 每次執行都從空白狀態開始，不會由快照還原帳戶。
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return snap, fmt.Errorf("storage: decode %s: %w", path, err)
	}
	return snap, nil
}

// SaveSnapshot 將快照寫入 path.tmp 後 rename 為 path。
// 寫入失敗時原檔保持不變，暫存檔會被移除。
func SaveSnapshot(path string, snap Snapshot) error {
	snap.Meta.Storage = "json_snapshot"
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Encode(f, snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, path)
}
